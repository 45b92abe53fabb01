package pathutil

import (
	"errors"
	"net/http"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// MaxIDLength bounds path IDs; store ids are 36 character UUIDs.
const MaxIDLength = 64

// ExtractID returns the named path wildcard of a request routed by
// http.ServeMux (e.g. "id" for "GET /api/v1/articles/{id}").
// It returns ErrInvalidID if the value is empty, too long or contains
// whitespace or control characters.
func ExtractID(r *http.Request, name string) (string, error) {
	id := r.PathValue(name)
	if !validID(id) {
		return "", ErrInvalidID
	}
	return id, nil
}

func validID(id string) bool {
	if id == "" || len(id) > MaxIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] == 0x7f {
			return false
		}
	}
	return true
}
