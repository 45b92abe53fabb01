package article

import (
	"errors"
	"fmt"
	"net/http"

	"newspaper/internal/handler/http/respond"
	"newspaper/internal/resilience/circuitbreaker"
	artUC "newspaper/internal/usecase/article"
)

// ConversionError reports a request value that could not be converted
// to its domain type, such as a malformed date or number.
type ConversionError struct {
	Field string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// ConversionFailed marks the error as a usecase conversion failure.
func (e *ConversionError) ConversionFailed() bool { return true }

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch artUC.KindOf(err) {
	case artUC.KindNotFound:
		return http.StatusNotFound
	case artUC.KindOutdatedVersion, artUC.KindValidation, artUC.KindConversion:
		return http.StatusBadRequest
	}
	if errors.Is(err, circuitbreaker.ErrStoreUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	switch code {
	case http.StatusServiceUnavailable:
		respond.SafeError(w, code, respond.NewAppError(code, "article store temporarily unavailable", err))
	case http.StatusInternalServerError:
		respond.SafeError(w, code, err)
	default:
		// 4xx はクライアント起因なのでメッセージをそのまま返す
		respond.Error(w, code, err)
	}
}
