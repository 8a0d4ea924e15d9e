package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/martin2250/scaleapi/backend/influx"
	"github.com/martin2250/scaleapi/backend/minitsdb"
	"github.com/martin2250/scaleapi/scales"
	"github.com/martin2250/scaleapi/store"
)

// openBackend creates the time series client shared by all requests
func openBackend(conf Configuration) scales.Backend {
	switch conf.Backend {
	case "influx":
		log.WithFields(log.Fields{
			"url":    conf.Influx.URL,
			"org":    conf.Influx.Org,
			"bucket": conf.Influx.Bucket,
		}).Info("using influx backend")

		b := influx.New(conf.Influx)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.Ping(ctx); err != nil {
			log.WithError(err).Warning("influx not reachable, queries will fail until it is")
		}
		return b
	case "minitsdb":
		log.WithField("address", conf.Minitsdb.Address).Info("using minitsdb backend")
		return minitsdb.New(conf.Minitsdb)
	}

	log.WithField("backend", conf.Backend).Fatal("unknown backend")
	return nil
}

func openStore(conf store.Config) *store.DB {
	log.WithField("driver", conf.Driver).Info("opening scale catalog")

	db, err := store.Open(conf)
	if err != nil {
		log.WithError(err).Fatal("failed to open scale catalog")
	}

	return db
}
