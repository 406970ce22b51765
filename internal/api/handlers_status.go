package api

import (
	"context"
	"net/http"

	"github.com/antighoster/antighoster/internal/api/respond"
)

// Prober reports upstream connectivity. *beeper.Client satisfies it.
type Prober interface {
	Probe(ctx context.Context) error
}

// StatusHandler answers the connectivity probe: reachability as a boolean,
// not a detailed error.
type StatusHandler struct {
	prober Prober
}

func NewStatusHandler(p Prober) *StatusHandler {
	return &StatusHandler{prober: p}
}

// Check GET /api/status
func (h *StatusHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.prober.Probe(r.Context()); err != nil {
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"connected": false,
			"error":     err.Error(),
		})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"connected": true})
}
