package main

import (
	log "github.com/sirupsen/logrus"
)

func setupLogging(conf confLogging) {
	level, err := log.ParseLevel(conf.Level)
	if err != nil {
		log.WithError(err).Fatal("invalid log level")
	}
	log.SetLevel(level)

	switch conf.Format {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.WithField("format", conf.Format).Fatal("unknown log format")
	}
}
