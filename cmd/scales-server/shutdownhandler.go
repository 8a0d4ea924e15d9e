package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// gracefulShutdown waits for a SIGINT or SIGTERM signal
// when a signal was received, it sends true to the channel
func gracefulShutdown(shutdown chan<- bool) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	<-sigs

	log.Warning("Received shutdown signal")
	shutdown <- true
}

// shutdownOnError calls the function f, which should never return in normal operation
// when it does, shutdownOnError logs the error and sends a shutdown signal
// to the channel
func shutdownOnError(f func() error, shutdown chan<- bool, message string) {
	err := f()
	if err == http.ErrServerClosed {
		return
	}

	log.WithError(err).Warning(message)
	shutdown <- true
}
