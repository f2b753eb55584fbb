package http

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/storage"
)

// MountStatic serves the single-page front end from the blob store.
// GET /static/* returns the blob at whatever follows the prefix; the bare
// prefix falls back to index.html.
func MountStatic(r chi.Router, bs storage.BlobStore) {
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(req, "*"), "/")
		if key == "" {
			key = "index.html"
		}
		rc, err := bs.Get("static/" + key)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		_, _ = io.Copy(w, rc)
	})
}
