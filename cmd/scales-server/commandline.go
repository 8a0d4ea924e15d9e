package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"
)

type CommandLineOptions struct {
	ConfigPath string `short:"c" long:"config" description:"configuration file"`
	Address    string `short:"l" long:"listen" description:"listen address of the HTTP API"`

	InfluxURL    string `long:"influx-url" env:"INFLUX_URL" description:"InfluxDB server URL"`
	InfluxToken  string `long:"influx-token" env:"INFLUX_TOKEN" description:"InfluxDB API token"`
	InfluxOrg    string `long:"influx-org" env:"ORG_ID" description:"InfluxDB organization"`
	InfluxBucket string `long:"influx-bucket" env:"INFLUX_BUCKET" description:"InfluxDB bucket holding the scale data"`

	Profile     string `long:"profile" description:"the type of profile to record"`
	ProfilePath string `long:"profilepath" description:"path for the profile"`
}

func readCommandLineOptions() CommandLineOptions {
	opts := CommandLineOptions{}
	_, err := flags.Parse(&opts)

	switch errt := err.(type) {
	case *flags.Error:
		if errt.Type == flags.ErrHelp {
			os.Exit(0)
		}
	}

	if err != nil {
		log.WithError(err).Fatal("could not parse command line arguments")
	}

	return opts
}
