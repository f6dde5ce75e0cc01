// Package api implements the read-only HTTP status API.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/micro-nova/meetlight/internal/models"
)

// StaleAfter is how old the last snapshot may be before /healthz fails. The
// machine publishes once per second, so a larger gap means the clock has
// stopped or the machine has exited.
const StaleAfter = 5 * time.Second

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	info   models.Info
	events EventBus
	now    func() time.Time
}

// EventBus is the interface for reading indicator snapshots.
type EventBus interface {
	Subscribe(id string) <-chan models.Snapshot
	Unsubscribe(id string)
	Last() (models.Snapshot, bool)
}

func newHandlers(info models.Info, bus EventBus) *Handlers {
	return &Handlers{info: info, events: bus, now: time.Now}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an AppError as a JSON response.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	if appErr, ok := err.(*models.AppError); ok {
		w.WriteHeader(appErr.Status)
		_ = json.NewEncoder(w).Encode(appErr)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(models.ErrInternal(err.Error()))
}
