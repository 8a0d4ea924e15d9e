package api

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/martin2250/scaleapi/scales"
)

type handleScales struct {
	log     *log.Logger
	catalog ScaleLister
}

func (h handleScales) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user_id")
	if err := scales.ValidateUserID(user); err != nil {
		writeError(w, h.log, err)
		return
	}

	list, err := h.catalog.ListScales(r.Context(), user)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, list)
}
