package handler

import (
	"net/http"

	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/pkg/contract"
)

// RouterConfig collects the dependencies of the HTTP API.
type RouterConfig struct {
	DB             repository.DB
	ContactService service.ContactService
	FrontendURL    string
	// StaticDir, when set, is served as the client bundle for non-API paths.
	StaticDir string
}

// NewRouter builds the full handler chain:
// RequestLogger → Recover → SecurityHeaders → CORS → routes.
func NewRouter(cfg RouterConfig) http.Handler {
	h := New(cfg.DB, cfg.FrontendURL)
	contactHandler := NewContactHandler(cfg.ContactService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc(contract.SubmitContact.Pattern(), contactHandler.Submit)
	mux.HandleFunc("/api/", NotFoundAPI)
	if cfg.StaticDir != "" {
		mux.Handle("/", NewSPAHandler(cfg.StaticDir))
	}

	return RequestLogger(Recover(SecurityHeaders(h.CORS(mux))))
}
