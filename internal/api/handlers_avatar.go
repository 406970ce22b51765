package api

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// MediaFetcher downloads one mxc media object. *beeper.Client satisfies it.
type MediaFetcher interface {
	DownloadMedia(ctx context.Context, server, mediaID string) ([]byte, string, error)
}

// AvatarHandler proxies avatar URIs the browser cannot load directly:
// file:// paths from local bridges and mxc:// Matrix media ids.
type AvatarHandler struct {
	media   MediaFetcher
	timeout time.Duration
}

func NewAvatarHandler(media MediaFetcher, timeout time.Duration) *AvatarHandler {
	return &AvatarHandler{media: media, timeout: timeout}
}

// Get GET /api/avatar?path=<uri>
func (h *AvatarHandler) Get(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	switch {
	case strings.HasPrefix(path, "file://"):
		h.serveLocalFile(w, path)
	case strings.HasPrefix(path, "mxc://"):
		h.serveMatrixMedia(w, r, path)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *AvatarHandler) serveLocalFile(w http.ResponseWriter, uri string) {
	p := strings.TrimPrefix(uri, "file://")
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	// file:///C:/... carries the drive letter behind an extra slash.
	if len(p) > 2 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}

	data, err := os.ReadFile(p)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	contentType := mime.TypeByExtension(filepath.Ext(p))
	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

func (h *AvatarHandler) serveMatrixMedia(w http.ResponseWriter, r *http.Request, uri string) {
	mxc := strings.TrimPrefix(uri, "mxc://")
	server, mediaID, _ := strings.Cut(mxc, "/")

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	data, contentType, err := h.media.DownloadMedia(ctx, server, mediaID)
	if err != nil {
		log.Warn().Err(err).Str("server", server).Msg("matrix media download failed")
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}
