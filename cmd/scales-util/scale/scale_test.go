package scale

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/martin2250/scaleapi/store"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestAddRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scales.db")

	if err := run(t, "add", "1", "--sqlite", path, "-u", "user-a", "-n", "kitchen"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "add", "id_2", "--sqlite", path, "-u", "user-a"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "rm", "2", "--sqlite", path, "-u", "user-a"); err != nil {
		t.Fatal(err)
	}

	conf := store.DefaultConfig
	conf.SQLite.Path = path
	db, err := store.Open(conf)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	list, err := db.ListScales(context.Background(), "user-a")
	if err != nil {
		t.Fatal(err)
	}
	want := []store.Scale{{DeviceID: "id_1", Name: "kitchen"}}
	if !reflect.DeepEqual(list, want) {
		t.Errorf("got %+v, want %+v", list, want)
	}
}

func TestMissingUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scales.db")
	if err := run(t, "list", "--sqlite", path, "-u", ""); err == nil {
		t.Error("expected error without user")
	}
}
