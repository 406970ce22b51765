package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/antighoster/antighoster/internal/api/respond"
	"github.com/antighoster/antighoster/internal/chatcache"
	"github.com/antighoster/antighoster/internal/core/people"
	"github.com/antighoster/antighoster/internal/model"
	"github.com/antighoster/antighoster/internal/settings"
)

// PeopleHandler serves ranked person signals built from current settings and
// the current chat cache. Signals are recomputed per request, never stored.
type PeopleHandler struct {
	cache *chatcache.Cache
	store *settings.Store
	now   func() time.Time
}

func NewPeopleHandler(cache *chatcache.Cache, store *settings.Store, now func() time.Time) *PeopleHandler {
	return &PeopleHandler{cache: cache, store: store, now: now}
}

// List GET /api/people
// A "bust" query parameter forces a cache refetch before building signals.
func (h *PeopleHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("bust") != "" {
		h.cache.Invalidate()
	}

	st, err := h.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("load settings failed")
		respond.WriteInternalError(w, err.Error())
		return
	}
	if len(st.People) == 0 {
		respond.WriteJSON(w, http.StatusOK, map[string]any{"people": []model.PersonSignal{}})
		return
	}

	raw, err := h.cache.Get(r.Context(), h.now())
	if err != nil {
		respond.WriteUpstreamError(w, err)
		return
	}

	index := make(map[string]model.RawChat, len(raw))
	for _, c := range raw {
		if id := c.ID(); id != "" {
			if _, dup := index[id]; !dup {
				index[id] = c
			}
		}
	}

	now := h.now()
	signals := make([]model.PersonSignal, 0, len(st.People))
	for _, p := range st.People {
		signals = append(signals, people.BuildSignal(p, index, now))
	}

	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"people": people.SortSignals(signals),
	})
}
