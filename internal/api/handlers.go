package api

import (
	"net/http"
	"time"

	"github.com/micro-nova/meetlight/internal/models"
)

func (h *Handlers) getStatus(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.events.Last()
	if !ok {
		writeError(w, models.ErrUnavailable("indicator has not reported yet"))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handlers) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.info)
}

type health struct {
	Status     string    `json:"status"`
	LastUpdate time.Time `json:"last_update,omitempty"`
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.events.Last()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, health{Status: "starting"})
		return
	}
	if h.now().Sub(snap.UpdatedAt) > StaleAfter {
		writeJSON(w, http.StatusServiceUnavailable, health{Status: "stale", LastUpdate: snap.UpdatedAt})
		return
	}
	writeJSON(w, http.StatusOK, health{Status: "ok", LastUpdate: snap.UpdatedAt})
}
