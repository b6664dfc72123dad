package handlers

import (
	"net/http"
	"os"
	"path/filepath"
)

// SPAHandler serves the browser app. Any path that does not match a
// file on disk falls back to the entry document so client-side routing
// keeps working.
type SPAHandler struct {
	staticDir string
}

func NewSPAHandler(staticDir string) SPAHandler {
	return SPAHandler{staticDir: staticDir}
}

func (h SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.staticDir, filepath.Clean("/"+r.URL.Path))

	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
		return
	}

	http.ServeFile(w, r, path)
}
