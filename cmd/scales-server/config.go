package main

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/martin2250/scaleapi/backend/influx"
	"github.com/martin2250/scaleapi/backend/minitsdb"
	"github.com/martin2250/scaleapi/cmd/scales-server/api"
	"github.com/martin2250/scaleapi/scales"
	"github.com/martin2250/scaleapi/store"
)

type confQuery struct {
	DefaultUser  string
	Absent       string
	StepPerHour  time.Duration
	DailyStep    time.Duration
	LatestWindow time.Duration
}

type confLogging struct {
	Level  string
	Format string
}

type Configuration struct {
	API api.Config

	// Backend is either influx or minitsdb
	Backend  string
	Influx   influx.Config
	Minitsdb minitsdb.Config

	Store store.Config

	Query confQuery

	Logging confLogging

	ShutdownTimeout time.Duration
}

var ConfigDefault = Configuration{
	API: api.Config{
		Address:      ":8081",
		ServeTimeout: 60 * time.Second,
	},
	Backend:  "influx",
	Influx:   influx.DefaultConfig,
	Minitsdb: minitsdb.DefaultConfig,
	Store:    store.DefaultConfig,
	Query: confQuery{
		DefaultUser:  scales.DefaultConfig.DefaultUser,
		Absent:       scales.DefaultConfig.Absent.String(),
		StepPerHour:  scales.DefaultConfig.StepPerHour,
		DailyStep:    scales.DefaultConfig.DailyStep,
		LatestWindow: scales.DefaultConfig.LatestWindow,
	},
	Logging: confLogging{
		Level:  "info",
		Format: "text",
	},
	ShutdownTimeout: 5 * time.Second,
}

// readConfigurationFile decodes the file at confpath over the defaults,
// an empty path returns the defaults.
// kills the application when there is an error
func readConfigurationFile(confpath string) Configuration {
	conf := ConfigDefault

	if confpath == "" {
		return conf
	}

	log.WithField("path", confpath).Info("loading configuration file")

	f, err := os.Open(confpath)
	if err != nil {
		log.WithError(err).Fatal("could not open configuration file")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	err = dec.Decode(&conf)
	if err != nil {
		log.WithError(err).Fatal("could not parse configuration file")
	}

	return conf
}

// applyCommandLine lets command line options and environment variables
// override the configuration file
func (c *Configuration) applyCommandLine(opts CommandLineOptions) {
	if opts.Address != "" {
		c.API.Address = opts.Address
	}
	if opts.InfluxURL != "" {
		c.Influx.URL = opts.InfluxURL
	}
	if opts.InfluxToken != "" {
		c.Influx.Token = opts.InfluxToken
	}
	if opts.InfluxOrg != "" {
		c.Influx.Org = opts.InfluxOrg
	}
	if opts.InfluxBucket != "" {
		c.Influx.Bucket = opts.InfluxBucket
	}
}

func (c confQuery) service() (scales.Config, error) {
	absent, err := scales.ParseAbsentPolicy(c.Absent)
	if err != nil {
		return scales.Config{}, err
	}
	return scales.Config{
		DefaultUser:  c.DefaultUser,
		Absent:       absent,
		StepPerHour:  c.StepPerHour,
		DailyStep:    c.DailyStep,
		LatestWindow: c.LatestWindow,
	}, nil
}
