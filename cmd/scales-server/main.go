package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/martin2250/scaleapi/cmd/scales-server/api"
	"github.com/martin2250/scaleapi/scales"
)

func main() {
	// command line
	opts := readCommandLineOptions()

	// profiling
	if opts.Profile != "" {
		defer debugStartProfile(opts.Profile, opts.ProfilePath).Stop()
	}

	// configuration
	conf := readConfigurationFile(opts.ConfigPath)
	conf.applyCommandLine(opts)
	setupLogging(conf.Logging)

	svcConf, err := conf.Query.service()
	if err != nil {
		log.WithError(err).Fatal("invalid query configuration")
	}

	// shutdown
	shutdown := make(chan bool, 2)
	go gracefulShutdown(shutdown)

	// time series backend and scale catalog
	backend := openBackend(conf)
	defer backend.Close()

	db := openStore(conf.Store)
	defer db.Close()

	svc := scales.NewService(backend, svcConf)

	// http
	r := mux.NewRouter()
	api.Register(r, conf.API, svc, db, log.StandardLogger())

	srv := &http.Server{
		Addr:    conf.API.Address,
		Handler: api.WithCORS(r),

		ReadHeaderTimeout: conf.API.ServeTimeout,
		ReadTimeout:       conf.API.ServeTimeout,
		WriteTimeout:      conf.API.ServeTimeout,
		IdleTimeout:       conf.API.ServeTimeout,
	}

	log.WithField("address", conf.API.Address).Info("listening")
	go shutdownOnError(srv.ListenAndServe, shutdown, "HTTP server failed")

	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Warning("Graceful shutdown timed out")
	}

	log.Info("Terminating")
}
