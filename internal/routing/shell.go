package routing

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/NYTimes/gziphandler"
)

// Shell serves the built single-page app: index.html for every client-side
// route and the static assets next to it.
type Shell struct {
	dir string
}

// NewShell constructs a Shell over the build directory dir.
func NewShell(dir string) *Shell {
	return &Shell{dir: dir}
}

// ServeHTTP writes index.html. It is re-read per request so a redeployed
// bundle is picked up without a restart.
func (s *Shell) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(filepath.Join(s.dir, "index.html"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "app bundle not found", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, "index.html", info.ModTime(), f)
}

// Assets serves files from the build directory, gzip-compressed when the
// client accepts it.
func (s *Shell) Assets() http.Handler {
	return gziphandler.GzipHandler(http.FileServer(http.Dir(s.dir)))
}
