package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type errorResponse struct {
	Message string `json:"message"`
}

// NotFoundAPI answers unknown /api/ paths with a JSON 404 so they never fall
// through to the client bundle.
func NotFoundAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Message: "Not found"})
}

// SPAHandler serves the built client from a directory. Paths that do not name
// a file get index.html so client-side routes resolve.
type SPAHandler struct {
	dir   string
	files http.Handler
}

// NewSPAHandler creates an SPAHandler rooted at dir.
func NewSPAHandler(dir string) *SPAHandler {
	return &SPAHandler{dir: dir, files: http.FileServer(http.Dir(dir))}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	absDir, err := filepath.Abs(h.dir)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	filePath := filepath.Join(absDir, filepath.FromSlash(clean))
	if !strings.HasPrefix(filePath, absDir+string(filepath.Separator)) && filePath != absDir {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	info, err := os.Stat(filePath)
	if err == nil && !info.IsDir() {
		h.files.ServeHTTP(w, r)
		return
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.serveIndex(w, r, absDir)
}

func (h *SPAHandler) serveIndex(w http.ResponseWriter, r *http.Request, absDir string) {
	f, err := os.Open(filepath.Join(absDir, "index.html"))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, "index.html", info.ModTime(), f)
}
