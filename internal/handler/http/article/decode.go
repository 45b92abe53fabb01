package article

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"newspaper/internal/domain/entity"
)

// decodeBody decodes a JSON request body, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &ConversionError{Field: "request body", Err: errors.New("too large")}
		}
		return &ConversionError{Field: "request body", Err: err}
	}
	return nil
}

// parsePublishDate treats an empty value as missing so validation reports it.
func parsePublishDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := entity.ParseDate(s)
	if err != nil {
		return time.Time{}, &ConversionError{Field: "publishDate", Err: err}
	}
	return d, nil
}
