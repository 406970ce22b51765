// Package api wires the HTTP surface: normalized chat listings, person
// signals, settings, the connectivity probe, the avatar proxy, and debug
// introspection.
package api

import (
	"time"

	"github.com/gorilla/mux"

	"github.com/antighoster/antighoster/internal/api/recovery"
	"github.com/antighoster/antighoster/internal/beeper"
	"github.com/antighoster/antighoster/internal/chatcache"
	"github.com/antighoster/antighoster/internal/config"
	"github.com/antighoster/antighoster/internal/settings"
)

// NewRouter creates the HTTP router with all API routes.
func NewRouter(client *beeper.Client, cache *chatcache.Cache, store *settings.Store, cfg *config.Config) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	now := time.Now

	chatsHandler := NewChatsHandler(cache, now)
	peopleHandler := NewPeopleHandler(cache, store, now)
	settingsHandler := NewSettingsHandler(store)
	statusHandler := NewStatusHandler(client)
	avatarHandler := NewAvatarHandler(client, cfg.MediaTimeout)
	debugHandler := NewDebugHandler(client, cache, now)

	router.HandleFunc("/api/settings", settingsHandler.Get).Methods("GET")
	router.HandleFunc("/api/settings", settingsHandler.Post).Methods("POST")

	router.HandleFunc("/api/contacts/raw", chatsHandler.ListRaw).Methods("GET")
	router.HandleFunc("/api/people", peopleHandler.List).Methods("GET")

	router.HandleFunc("/api/status", statusHandler.Check).Methods("GET")
	router.HandleFunc("/api/avatar", avatarHandler.Get).Methods("GET")

	router.HandleFunc("/api/debug", debugHandler.Overview).Methods("GET")
	router.HandleFunc("/api/debug/message", debugHandler.Sample).Methods("GET")

	return router
}
