package article

import (
	"log/slog"
	"net/http"

	"newspaper/internal/common/pagination"
	artUC "newspaper/internal/usecase/article"
)

// BasePath prefixes every article route.
const BasePath = "/api/v1"

// Options configures the article routes.
type Options struct {
	Pagination pagination.Config
	Logger     *slog.Logger
	// SearchMiddleware wraps the search handler, e.g. with a throttle.
	SearchMiddleware func(http.Handler) http.Handler
}

// Register registers all article-related HTTP handlers with the given mux.
// It sets up routes for listing, searching, creating, updating, and deleting articles.
func Register(mux *http.ServeMux, svc artUC.Service, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Pagination.Normalize()

	var search http.Handler = SearchHandler{Svc: svc, PaginationCfg: cfg, Logger: logger}
	if opts.SearchMiddleware != nil {
		search = opts.SearchMiddleware(search)
	}

	mux.Handle("GET    "+BasePath+"/articles", ListHandler{Svc: svc, PaginationCfg: cfg, Logger: logger})
	mux.Handle("GET    "+BasePath+"/articles:search", search)
	mux.Handle("GET    "+BasePath+"/articles/{id}", GetHandler{Svc: svc})

	mux.Handle("POST   "+BasePath+"/articles", CreateHandler{Svc: svc})
	mux.Handle("PUT    "+BasePath+"/articles/{id}", UpdateHandler{Svc: svc})
	mux.Handle("DELETE "+BasePath+"/articles/{id}", DeleteHandler{Svc: svc})
}
