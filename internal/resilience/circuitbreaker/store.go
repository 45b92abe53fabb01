package circuitbreaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"newspaper/internal/domain/entity"
	"newspaper/internal/repository"
)

// ErrStoreUnavailable is returned while the store circuit is open.
var ErrStoreUnavailable = errors.New("article store unavailable")

// StoreConfig returns configuration tuned for the article store: five
// consecutive infrastructure failures, or half of at least 20 calls in a
// minute, open the circuit for 30 seconds.
func StoreConfig() Config {
	return Config{
		Name:                "article-store",
		MaxRequests:         3,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
		FailureThreshold:    0.5,
		MinRequests:         20,
		IsSuccessful:        isStoreSuccess,
	}
}

// isStoreSuccess counts version conflicts and caller cancellations as
// successful calls; neither says anything about store health.
func isStoreSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, repository.ErrVersionConflict) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Store wraps an ArticleStore with circuit breaker protection.
// Calls are never retried; an open circuit fails fast with ErrStoreUnavailable.
type Store struct {
	cb    *CircuitBreaker
	store repository.ArticleStore
}

// NewStore wraps store with the default store configuration.
func NewStore(store repository.ArticleStore) *Store {
	return NewStoreWithConfig(store, StoreConfig())
}

// NewStoreWithConfig wraps store with a custom configuration.
// A nil IsSuccessful falls back to the store classification.
func NewStoreWithConfig(store repository.ArticleStore, cfg Config) *Store {
	if cfg.IsSuccessful == nil {
		cfg.IsSuccessful = isStoreSuccess
	}
	return &Store{cb: New(cfg), store: store}
}

var _ repository.ArticleStore = (*Store)(nil)

func execute[T any](s *Store, fn func() (T, error)) (T, error) {
	var out T
	err := s.cb.Execute(func() error {
		var err error
		out, err = fn()
		return err
	})
	if errors.Is(err, ErrOpen) {
		var zero T
		return zero, ErrStoreUnavailable
	}
	return out, err
}

func (s *Store) Insert(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	return execute(s, func() (*entity.Article, error) { return s.store.Insert(ctx, article) })
}

func (s *Store) FindActive(ctx context.Context, id string) (*entity.Article, error) {
	return execute(s, func() (*entity.Article, error) { return s.store.FindActive(ctx, id) })
}

func (s *Store) Save(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	return execute(s, func() (*entity.Article, error) { return s.store.Save(ctx, article) })
}

func (s *Store) ListActive(ctx context.Context, limit, offset int) ([]*entity.Article, error) {
	return execute(s, func() ([]*entity.Article, error) { return s.store.ListActive(ctx, limit, offset) })
}

func (s *Store) Search(ctx context.Context, filter repository.ArticleFilter, limit, offset int) ([]*entity.Article, error) {
	return execute(s, func() ([]*entity.Article, error) { return s.store.Search(ctx, filter, limit, offset) })
}

func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return execute(s, func() (int64, error) { return s.store.CountActive(ctx) })
}

// Ping bypasses the breaker so health checks report the real store state.
func (s *Store) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// State returns the current state of the circuit breaker.
func (s *Store) State() gobreaker.State {
	return s.cb.State()
}

// IsOpen returns true if the circuit breaker is in the open state.
func (s *Store) IsOpen() bool {
	return s.cb.IsOpen()
}
