// Package repository declares the persistence ports of the article service
// and the composable search filter passed through them.
package repository

import (
	"context"
	"errors"

	"newspaper/internal/domain/entity"
)

// ErrVersionConflict is returned by ArticleStore.Save when the persisted
// version no longer matches the version carried by the article, or the
// persisted record has been deleted in the meantime.
var ErrVersionConflict = errors.New("article version conflict")

// ArticleStore is the document store port for articles.
// Deleted articles are invisible to every read method.
type ArticleStore interface {
	// Insert assigns the id, timestamps and version 0, persists the article
	// and returns the stored copy.
	Insert(ctx context.Context, article *entity.Article) (*entity.Article, error)
	// FindActive returns (nil, nil) if the article is absent or deleted.
	FindActive(ctx context.Context, id string) (*entity.Article, error)
	// Save writes a new revision of the article. The write applies only if
	// the persisted version equals article.Version; the stored copy is
	// returned with the version incremented. Otherwise ErrVersionConflict.
	Save(ctx context.Context, article *entity.Article) (*entity.Article, error)
	// ListActive returns non-deleted articles ordered by id descending.
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Article, error)
	// Search returns articles matching the filter ordered by id descending.
	Search(ctx context.Context, filter ArticleFilter, limit, offset int) ([]*entity.Article, error)
	CountActive(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}
