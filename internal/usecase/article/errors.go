// Package article provides use cases for managing article entities.
// It implements business logic for creating, updating, deleting, and querying articles,
// including validation, optimistic concurrency and interaction with the article store.
package article

import (
	"errors"
	"fmt"

	"newspaper/internal/domain/entity"
)

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article does not exist
	// or has been deleted.
	ErrArticleNotFound = errors.New("article not found")

	// ErrOutdatedVersion indicates that an update carried a version that is
	// not strictly greater than the stored one.
	ErrOutdatedVersion = errors.New("outdated article version")
)

// Kind classifies the failures surfaced by the service.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindOutdatedVersion
	KindValidation
	KindConversion
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindOutdatedVersion:
		return "outdated_version"
	case KindValidation:
		return "validation"
	case KindConversion:
		return "conversion"
	default:
		return "unknown"
	}
}

// Error is a classified service error.
// ID is the article id involved; Version is the stored version for
// KindOutdatedVersion.
type Error struct {
	Kind    Kind
	ID      string
	Version int64
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("article not found: id=%s", e.ID)
	case KindOutdatedVersion:
		return fmt.Sprintf("version must be greater than current version %d", e.Version)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindNotFound:
		return target == ErrArticleNotFound
	case KindOutdatedVersion:
		return target == ErrOutdatedVersion
	}
	return false
}

func notFound(id string) error {
	return &Error{Kind: KindNotFound, ID: id}
}

func outdated(id string, current int64, cause error) error {
	return &Error{Kind: KindOutdatedVersion, ID: id, Version: current, Err: cause}
}

// ConversionFailure is implemented by errors raised while converting request
// input (dates, numbers) into domain values.
type ConversionFailure interface {
	error
	ConversionFailed() bool
}

// KindOf classifies any error returned by the service or its collaborators.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		return KindValidation
	}
	var cErr ConversionFailure
	if errors.As(err, &cErr) && cErr.ConversionFailed() {
		return KindConversion
	}
	return KindUnknown
}
