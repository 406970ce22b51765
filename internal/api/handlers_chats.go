package api

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/antighoster/antighoster/internal/api/respond"
	"github.com/antighoster/antighoster/internal/chatcache"
	"github.com/antighoster/antighoster/internal/core/chats"
	"github.com/antighoster/antighoster/internal/model"
)

// ChatsHandler serves the normalized chat listing.
type ChatsHandler struct {
	cache *chatcache.Cache
	now   func() time.Time
}

func NewChatsHandler(cache *chatcache.Cache, now func() time.Time) *ChatsHandler {
	return &ChatsHandler{cache: cache, now: now}
}

// ListRaw GET /api/contacts/raw
// Returns every chat exactly once, split into direct messages and groups.
func (h *ChatsHandler) ListRaw(w http.ResponseWriter, r *http.Request) {
	raw, err := h.cache.Get(r.Context(), h.now())
	if err != nil {
		respond.WriteUpstreamError(w, err)
		return
	}

	now := h.now()
	var dms, groups []model.ChatSummary
	for _, c := range dedupByID(raw) {
		// Only classify as group when explicitly typed: participant count
		// is unreliable across platforms, Instagram especially.
		isGroup := strings.ToLower(c.Type()) == "group"
		summary := chats.Summarize(c, isGroup, now)
		if isGroup {
			groups = append(groups, summary)
		} else {
			dms = append(dms, summary)
		}
	}

	sortDMs(dms)
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"contacts": dms,
		"groups":   groups,
		"total":    len(dms) + len(groups),
	})
}

// dedupByID drops repeated chat ids and ids that are missing entirely,
// keeping first occurrence and upstream order. Duplicate ids should not
// occur from the paginator; first-wins is a defensive default.
func dedupByID(raw []model.RawChat) []model.RawChat {
	seen := map[string]bool{}
	out := make([]model.RawChat, 0, len(raw))
	for _, c := range raw {
		id := c.ID()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, c)
	}
	return out
}

// sortDMs orders direct chats freshest-first: chats with a resolvable days
// count ahead of those without, then ascending days, then name.
func sortDMs(dms []model.ChatSummary) {
	sort.SliceStable(dms, func(i, j int) bool {
		di, dj := dms[i].DaysSinceYouTexted, dms[j].DaysSinceYouTexted
		if (di == nil) != (dj == nil) {
			return di != nil
		}
		if di != nil && *di != *dj {
			return *di < *dj
		}
		return strings.ToLower(dms[i].Name) < strings.ToLower(dms[j].Name)
	})
}
