// Package redisstore provides a Redis implementation of the article store.
//
// Each article is a JSON record at article:{id}. The sorted set
// articles:active holds the ids of non-deleted articles, all with score 0,
// so lexicographic range queries return them in id order.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"newspaper/internal/domain/entity"
	"newspaper/internal/infra/adapter/persistence/document"
	"newspaper/internal/repository"
)

const (
	articleKeyPrefix = "article:"
	activeIndexKey   = "articles:active"

	// searchBatchSize is the number of ids read from the index per round trip.
	searchBatchSize = 100
)

// ArticleStore stores articles in Redis.
type ArticleStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewArticleStore creates a store backed by client.
func NewArticleStore(client *redis.Client) *ArticleStore {
	return &ArticleStore{
		client: client,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

var _ repository.ArticleStore = (*ArticleStore)(nil)

func articleKey(id string) string {
	return articleKeyPrefix + id
}

func (s *ArticleStore) Insert(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("Insert: generate id: %w", err)
	}
	stored := article.Clone()
	stored.ID = id.String()
	stored.Deleted = false
	stored.Version = 0
	stored.CreatedAt = s.now()
	stored.LastModifiedAt = stored.CreatedAt

	data, err := document.MarshalRecord(stored)
	if err != nil {
		return nil, fmt.Errorf("Insert: encode: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, articleKey(stored.ID), data, 0)
		pipe.ZAdd(ctx, activeIndexKey, redis.Z{Score: 0, Member: stored.ID})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Insert: %w", err)
	}
	return stored, nil
}

func (s *ArticleStore) FindActive(ctx context.Context, id string) (*entity.Article, error) {
	a, err := s.get(ctx, s.client, id)
	if err != nil {
		return nil, fmt.Errorf("FindActive: %w", err)
	}
	if a == nil || a.Deleted {
		return nil, nil
	}
	return a, nil
}

// Save writes the new revision inside WATCH/MULTI/EXEC. A concurrent write
// to the same key aborts the transaction and is reported as a conflict.
func (s *ArticleStore) Save(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	key := articleKey(article.ID)
	var stored *entity.Article

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := s.get(ctx, tx, article.ID)
		if err != nil {
			return err
		}
		if current == nil || current.Deleted || current.Version != article.Version {
			return repository.ErrVersionConflict
		}

		next := article.Clone()
		next.CreatedAt = current.CreatedAt
		next.LastModifiedAt = s.now()
		next.Version = current.Version + 1

		data, err := document.MarshalRecord(next)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if next.Deleted {
				pipe.ZRem(ctx, activeIndexKey, next.ID)
			}
			return nil
		})
		if err != nil {
			return err
		}
		stored = next
		return nil
	}, key)

	switch {
	case err == nil:
		return stored, nil
	case errors.Is(err, repository.ErrVersionConflict), errors.Is(err, redis.TxFailedErr):
		return nil, repository.ErrVersionConflict
	default:
		return nil, fmt.Errorf("Save: %w", err)
	}
}

func (s *ArticleStore) ListActive(ctx context.Context, limit, offset int) ([]*entity.Article, error) {
	ids, err := s.client.ZRevRangeByLex(ctx, activeIndexKey, &redis.ZRangeBy{
		Min:    "-",
		Max:    "+",
		Offset: int64(offset),
		Count:  int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("ListActive: %w", err)
	}

	articles, err := s.load(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("ListActive: %w", err)
	}
	out := make([]*entity.Article, 0, len(articles))
	for _, a := range articles {
		if !a.Deleted {
			out = append(out, a)
		}
	}
	return out, nil
}

// Search walks the active index newest first and evaluates the filter in
// process until offset+limit matches have been seen. Each batch resumes
// strictly below the last id read, so concurrent inserts and deletes do
// not repeat or skip entries within one call.
func (s *ArticleStore) Search(ctx context.Context, filter repository.ArticleFilter, limit, offset int) ([]*entity.Article, error) {
	out := make([]*entity.Article, 0)
	if limit <= 0 {
		return out, nil
	}
	skipped := 0
	upper := "+"

	for {
		ids, err := s.client.ZRevRangeByLex(ctx, activeIndexKey, &redis.ZRangeBy{
			Min:   "-",
			Max:   upper,
			Count: searchBatchSize,
		}).Result()
		if err != nil {
			return nil, fmt.Errorf("Search: %w", err)
		}

		articles, err := s.load(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("Search: %w", err)
		}
		for _, a := range articles {
			if a.Deleted || !filter.Matches(a) {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			out = append(out, a)
			if len(out) >= limit {
				return out, nil
			}
		}

		if len(ids) < searchBatchSize {
			return out, nil
		}
		upper = "(" + ids[len(ids)-1]
	}
}

func (s *ArticleStore) CountActive(ctx context.Context) (int64, error) {
	n, err := s.client.ZCard(ctx, activeIndexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("CountActive: %w", err)
	}
	return n, nil
}

func (s *ArticleStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// get returns (nil, nil) when the key does not exist.
func (s *ArticleStore) get(ctx context.Context, c redis.Cmdable, id string) (*entity.Article, error) {
	data, err := c.Get(ctx, articleKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a, err := document.UnmarshalRecord(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	return a, nil
}

// load fetches the records for ids in order, skipping keys that vanished.
func (s *ArticleStore) load(ctx context.Context, ids []string) ([]*entity.Article, error) {
	if len(ids) == 0 {
		return []*entity.Article{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = articleKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	articles := make([]*entity.Article, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		a, err := document.UnmarshalRecord([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", ids[i], err)
		}
		articles = append(articles, a)
	}
	return articles, nil
}
