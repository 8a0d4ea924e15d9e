package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/martin2250/scaleapi/scales"
	"github.com/martin2250/scaleapi/store"
)

type Config struct {
	Address string

	// Prefix is prepended to all routes, e.g. "/index"
	Prefix string

	ServeTimeout time.Duration
}

// ScaleLister lists the scales registered to a user
type ScaleLister interface {
	ListScales(ctx context.Context, userID string) ([]store.Scale, error)
}

// Register adds all endpoints to r. Unknown paths and methods are answered
// with 400 like any other invalid request.
func Register(r *mux.Router, conf Config, svc *scales.Service, catalog ScaleLister, logger *log.Logger) {
	r.Use(logRequests(logger))
	r.NotFoundHandler = handleInvalid{log: logger}
	r.MethodNotAllowedHandler = handleInvalid{log: logger}

	routes := r
	if conf.Prefix != "" {
		routes = r.PathPrefix(conf.Prefix).Subrouter()
	}

	get := func(path string, h http.Handler) {
		routes.Handle(path, h).Methods(http.MethodGet)
	}

	get("/scales/history", handleRange{log: logger, query: svc.History})
	get("/scales/accumulated", handleRange{log: logger, query: svc.Accumulated})
	get("/scales/total", handleTotal{log: logger, svc: svc})
	get("/scales/daily", handleSpan{log: logger, query: svc.Daily})
	get("/scales/dailyaccumulated", handleSpan{log: logger, query: svc.DailyAccumulated})
	get("/scales/latest", handleLatest{log: logger, svc: svc})
	get("/scales/scales", handleScales{log: logger, catalog: catalog})
}

type handleInvalid struct {
	log *log.Logger
}

func (h handleInvalid) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeError(w, h.log, errInvalidURL)
}
