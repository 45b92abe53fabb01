// Package requestid assigns every HTTP request an ID that is echoed to the
// client and attached to each log line written while serving it.
package requestid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header carries the request ID in both directions.
const Header = "X-Request-ID"

// MaxLength is the longest client supplied request ID that is accepted.
const MaxLength = 64

type ctxKey struct{}

var validID = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// NewContext returns a copy of ctx carrying id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID stored in ctx, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// IsValid reports whether a client supplied id can be logged verbatim.
func IsValid(id string) bool {
	return len(id) <= MaxLength && validID.MatchString(id)
}

// Middleware reuses a valid incoming X-Request-ID or mints a UUIDv7.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !IsValid(id) {
			// 改行などを含む値はログを汚すので採用しない
			id = newID()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), id)))
	})
}

func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
