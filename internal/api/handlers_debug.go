package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/antighoster/antighoster/internal/api/respond"
	"github.com/antighoster/antighoster/internal/chatcache"
	"github.com/antighoster/antighoster/internal/core/chats"
	"github.com/antighoster/antighoster/internal/model"
)

// PageLister fetches one raw listing page. *beeper.Client satisfies it.
type PageLister interface {
	ListChatsPage(ctx context.Context, limit int) (map[string]any, error)
}

// DebugHandler exposes raw upstream shapes: response keys, pagination
// fields, and per-network counts. Useful when a new bridge shows up with
// yet another field naming scheme.
type DebugHandler struct {
	lister PageLister
	cache  *chatcache.Cache
	now    func() time.Time
}

func NewDebugHandler(lister PageLister, cache *chatcache.Cache, now func() time.Time) *DebugHandler {
	return &DebugHandler{lister: lister, cache: cache, now: now}
}

// Overview GET /api/debug
func (h *DebugHandler) Overview(w http.ResponseWriter, r *http.Request) {
	page, err := h.lister.ListChatsPage(r.Context(), 25)
	if err != nil {
		respond.WriteUpstreamError(w, err)
		return
	}

	rawKeys := make([]string, 0, len(page))
	paginationFields := map[string]any{}
	for k := range page {
		rawKeys = append(rawKeys, k)
		lower := strings.ToLower(k)
		for _, marker := range []string{"cursor", "next", "page", "total", "count"} {
			if strings.Contains(lower, marker) {
				paginationFields[k] = page[k]
				break
			}
		}
	}

	all, err := h.cache.Get(r.Context(), h.now())
	if err != nil {
		respond.WriteUpstreamError(w, err)
		return
	}
	unique := dedupByID(all)

	networkCounts := map[model.Network]int{}
	for _, c := range unique {
		accountID, _ := c["accountID"].(string)
		if accountID == "" {
			accountID, _ = c["account_id"].(string)
		}
		networkCounts[chats.ClassifyNetwork(accountID)]++
	}

	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"totalUnique":      len(unique),
		"byFetch":          map[string]int{"fetched": len(all), "unique": len(unique)},
		"byNetwork":        networkCounts,
		"rawResponseKeys":  rawKeys,
		"paginationFields": paginationFields,
	})
}

// Sample GET /api/debug/message
// Shows the first few raw chats with their key sets, for locating timestamp
// and sender fields on an unfamiliar network.
func (h *DebugHandler) Sample(w http.ResponseWriter, r *http.Request) {
	all, err := h.cache.Get(r.Context(), h.now())
	if err != nil {
		respond.WriteUpstreamError(w, err)
		return
	}

	const sampleSize = 5
	samples := make([]map[string]any, 0, sampleSize)
	for _, c := range all {
		if len(samples) == sampleSize {
			break
		}
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		name, _ := c["name"].(string)
		if name == "" {
			name, _ = c["title"].(string)
		}
		samples = append(samples, map[string]any{
			"chatName": name,
			"allKeys":  keys,
			"full":     c,
		})
	}
	respond.WriteJSON(w, http.StatusOK, samples)
}
