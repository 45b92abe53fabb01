// Package memory provides an in-process implementation of the article store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"newspaper/internal/domain/entity"
	"newspaper/internal/repository"
)

// ArticleStore keeps articles in a map guarded by a mutex.
// Returned articles are copies; callers may mutate them freely.
type ArticleStore struct {
	mu       sync.RWMutex
	articles map[string]*entity.Article
	now      func() time.Time
	newID    func() (string, error)
}

// NewArticleStore creates an empty store.
func NewArticleStore() *ArticleStore {
	return &ArticleStore{
		articles: make(map[string]*entity.Article),
		now:      func() time.Time { return time.Now().UTC() },
		newID: func() (string, error) {
			id, err := uuid.NewV7()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
	}
}

var _ repository.ArticleStore = (*ArticleStore)(nil)

func (s *ArticleStore) Insert(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("Insert: generate id: %w", err)
	}

	stored := article.Clone()
	stored.ID = id
	stored.Deleted = false
	stored.Version = 0
	stored.CreatedAt = s.now()
	stored.LastModifiedAt = stored.CreatedAt

	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[id] = stored
	return stored.Clone(), nil
}

func (s *ArticleStore) FindActive(ctx context.Context, id string) (*entity.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok || a.Deleted {
		return nil, nil
	}
	return a.Clone(), nil
}

func (s *ArticleStore) Save(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.articles[article.ID]
	if !ok || current.Deleted || current.Version != article.Version {
		return nil, repository.ErrVersionConflict
	}

	stored := article.Clone()
	stored.CreatedAt = current.CreatedAt
	stored.LastModifiedAt = s.now()
	stored.Version = current.Version + 1
	s.articles[article.ID] = stored
	return stored.Clone(), nil
}

func (s *ArticleStore) ListActive(ctx context.Context, limit, offset int) ([]*entity.Article, error) {
	return s.Search(ctx, repository.ArticleFilter{Clauses: []repository.Clause{repository.NotDeleted()}}, limit, offset)
}

func (s *ArticleStore) Search(ctx context.Context, filter repository.ArticleFilter, limit, offset int) ([]*entity.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	matched := make([]*entity.Article, 0)
	for _, a := range s.articles {
		// 削除済みはフィルタに関わらず除外
		if a.Deleted || !filter.Matches(a) {
			continue
		}
		matched = append(matched, a.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, limit, offset), nil
}

func (s *ArticleStore) CountActive(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, a := range s.articles {
		if !a.Deleted {
			n++
		}
	}
	return n, nil
}

func (s *ArticleStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func paginate(articles []*entity.Article, limit, offset int) []*entity.Article {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(articles) {
		return []*entity.Article{}
	}
	end := len(articles)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return articles[offset:end]
}
