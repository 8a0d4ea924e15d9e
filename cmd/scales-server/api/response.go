package api

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/martin2250/scaleapi/scales"
)

var errInvalidURL = errors.New("Invalid url parameter")

func writeJSON(w http.ResponseWriter, logger *log.Logger, v interface{}) {
	buf, err := json.Marshal(v)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(buf)
}

// writeError answers 400 with {"error": message}. Rejected input is logged at
// debug level, anything else comes from upstream and is a warning.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	if isInputError(err) {
		logger.WithError(err).Debug("rejected request")
	} else {
		logger.WithError(err).Warning("request failed")
	}

	buf, _ := json.Marshal(struct {
		Error string `json:"error"`
	}{err.Error()})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	w.Write(buf)
}

func isInputError(err error) bool {
	for _, e := range []error{errInvalidURL, scales.ErrInvalidRange, scales.ErrInvalidUser, scales.ErrInvalidSpan} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
