// Package instrumented decorates an article store with Prometheus timings.
package instrumented

import (
	"context"
	"time"

	"newspaper/internal/domain/entity"
	"newspaper/internal/observability/metrics"
	"newspaper/internal/repository"
)

// ArticleStore records article_store_operation_duration_seconds for every
// call to the wrapped store.
type ArticleStore struct {
	next repository.ArticleStore
	now  func() time.Time
}

var _ repository.ArticleStore = (*ArticleStore)(nil)

func NewArticleStore(next repository.ArticleStore) *ArticleStore {
	return &ArticleStore{next: next, now: time.Now}
}

func (s *ArticleStore) observe(op string, start time.Time, err error) {
	metrics.RecordStoreOperation(op, s.now().Sub(start), err)
}

func (s *ArticleStore) Insert(ctx context.Context, article *entity.Article) (_ *entity.Article, err error) {
	defer func(start time.Time) { s.observe("insert", start, err) }(s.now())
	return s.next.Insert(ctx, article)
}

func (s *ArticleStore) FindActive(ctx context.Context, id string) (_ *entity.Article, err error) {
	defer func(start time.Time) { s.observe("find_active", start, err) }(s.now())
	return s.next.FindActive(ctx, id)
}

// Save counts a version conflict as an error result.
func (s *ArticleStore) Save(ctx context.Context, article *entity.Article) (_ *entity.Article, err error) {
	defer func(start time.Time) { s.observe("save", start, err) }(s.now())
	return s.next.Save(ctx, article)
}

func (s *ArticleStore) ListActive(ctx context.Context, limit, offset int) (_ []*entity.Article, err error) {
	defer func(start time.Time) { s.observe("list_active", start, err) }(s.now())
	return s.next.ListActive(ctx, limit, offset)
}

func (s *ArticleStore) Search(ctx context.Context, filter repository.ArticleFilter, limit, offset int) (_ []*entity.Article, err error) {
	defer func(start time.Time) { s.observe("search", start, err) }(s.now())
	return s.next.Search(ctx, filter, limit, offset)
}

func (s *ArticleStore) CountActive(ctx context.Context) (_ int64, err error) {
	defer func(start time.Time) { s.observe("count_active", start, err) }(s.now())
	return s.next.CountActive(ctx)
}

func (s *ArticleStore) Ping(ctx context.Context) (err error) {
	defer func(start time.Time) { s.observe("ping", start, err) }(s.now())
	return s.next.Ping(ctx)
}
