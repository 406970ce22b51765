package api

import (
	"encoding/json"
	"net/http"

	"github.com/antighoster/antighoster/internal/api/respond"
	"github.com/antighoster/antighoster/internal/settings"
)

// SettingsHandler exposes the settings document.
type SettingsHandler struct {
	store *settings.Store
}

func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// Get GET /api/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.Load()
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, st)
}

// Post POST /api/settings
// Merges the posted top-level keys over the current document.
func (h *SettingsHandler) Post(w http.ResponseWriter, r *http.Request) {
	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if _, err := h.store.Merge(patch); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}
