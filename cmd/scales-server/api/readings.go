package api

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/martin2250/scaleapi/scales"
)

// handleRange serves history and accumulated
type handleRange struct {
	log   *log.Logger
	query func(context.Context, scales.RangeRequest) (scales.Series, error)
}

func (h handleRange) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := parseRange(r.URL.Query())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	series, err := h.query(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, series)
}

// handleSpan serves daily and dailyaccumulated
type handleSpan struct {
	log   *log.Logger
	query func(context.Context, scales.SpanRequest) (scales.Series, error)
}

func (h handleSpan) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := parseSpan(r.URL.Query())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	series, err := h.query(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, series)
}

type handleTotal struct {
	log *log.Logger
	svc *scales.Service
}

func (h handleTotal) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := parseRange(r.URL.Query())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	total, err := h.svc.Total(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, total)
}

type handleLatest struct {
	log *log.Logger
	svc *scales.Service
}

func (h handleLatest) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	latest, err := h.svc.Latest(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, latest)
}
