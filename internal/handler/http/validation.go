package http

import (
	"errors"
	"net/http"

	"newspaper/internal/handler/http/respond"
)

// Request line limits applied in front of the article routes.
const (
	MaxPathLength  = 2048
	MaxQueryLength = 4096
)

var (
	errURITooLong   = errors.New("URI too long")
	errQueryTooLong = errors.New("query string too long")
)

// InputValidation returns middleware that rejects oversized request lines
// before routing. Search criteria travel in the query string, so the query
// gets its own limit separate from the path.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > MaxPathLength {
				respond.Error(w, http.StatusRequestURITooLong, errURITooLong)
				return
			}
			if len(r.URL.RawQuery) > MaxQueryLength {
				respond.Error(w, http.StatusRequestURITooLong, errQueryTooLong)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
