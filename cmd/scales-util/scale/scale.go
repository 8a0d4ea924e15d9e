// Package scale manages the scale catalog read by the /scales endpoint
package scale

import (
	"encoding/json"
	"errors"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/martin2250/scaleapi/scales"
	"github.com/martin2250/scaleapi/store"
)

var scaleflags = struct {
	store store.Config
	user  string
	name  string
}{
	store: store.DefaultConfig,
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scale",
		Short: "List, add and remove the scales of a user",
	}

	cmd.InitDefaultHelpCmd()

	pf := cmd.PersistentFlags()
	pf.StringVar(&scaleflags.store.Driver, "driver", scaleflags.store.Driver, "catalog driver (sqlite or postgres)")
	pf.StringVar(&scaleflags.store.SQLite.Path, "sqlite", scaleflags.store.SQLite.Path, "path to the sqlite database")
	pf.StringVar(&scaleflags.store.Postgres.Host, "pg-host", scaleflags.store.Postgres.Host, "postgres host")
	pf.IntVar(&scaleflags.store.Postgres.Port, "pg-port", scaleflags.store.Postgres.Port, "postgres port")
	pf.StringVar(&scaleflags.store.Postgres.Database, "pg-database", scaleflags.store.Postgres.Database, "postgres database")
	pf.StringVar(&scaleflags.store.Postgres.User, "pg-user", scaleflags.store.Postgres.User, "postgres user")
	pf.StringVar(&scaleflags.store.Postgres.Password, "pg-password", "", "postgres password")
	pf.StringVarP(&scaleflags.user, "user", "u", "", "owner of the scales")

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the scales of a user as JSON",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	add := &cobra.Command{
		Use:   "add <device id>",
		Short: "Register a scale or rename an existing one",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdd,
	}
	add.Flags().StringVarP(&scaleflags.name, "name", "n", "", "display name of the scale")

	rm := &cobra.Command{
		Use:   "rm <device id>",
		Short: "Remove a scale",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}

	cmd.AddCommand(list, add, rm)

	return cmd
}

func open() (*store.DB, error) {
	if err := scales.ValidateUserID(scaleflags.user); err != nil {
		return nil, errors.New("user must be set with --user")
	}
	log.WithField("driver", scaleflags.store.Driver).Debug("opening scale catalog")
	return store.Open(scaleflags.store)
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := open()
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := db.ListScales(cmd.Context(), scaleflags.user)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

func runAdd(cmd *cobra.Command, args []string) error {
	db, err := open()
	if err != nil {
		return err
	}
	defer db.Close()

	s := store.Scale{DeviceID: scales.DeviceKey(args[0]), Name: scaleflags.name}
	if err := db.UpsertScale(cmd.Context(), scaleflags.user, s); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"user":   scaleflags.user,
		"device": s.DeviceID,
	}).Info("scale saved")
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	db, err := open()
	if err != nil {
		return err
	}
	defer db.Close()

	device := scales.DeviceKey(args[0])
	if err := db.DeleteScale(cmd.Context(), scaleflags.user, device); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"user":   scaleflags.user,
		"device": device,
	}).Info("scale removed")
	return nil
}
