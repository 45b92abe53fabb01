package redisstore

import (
	"context"
	"errors"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper/internal/domain/entity"
	"newspaper/internal/repository"
)

// testRedisClient connects to the server at REDIS_ADDR (DB 15) when set and
// otherwise to an in-process miniredis, so the CAS path runs in every build.
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return redis.NewClient(&redis.Options{Addr: miniredis.RunT(t).Addr()})
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("skipping integration test: Redis not reachable at %s: %v", addr, err)
	}

	cleanup := func() {
		keys, _ := client.Keys(ctx, articleKeyPrefix+"*").Result()
		keys = append(keys, activeIndexKey)
		client.Del(ctx, keys...)
	}
	cleanup()
	t.Cleanup(func() {
		cleanup()
		_ = client.Close()
	})

	return client
}

func fields(header string, publish time.Time, authors, keywords []string) entity.ArticleFields {
	return entity.ArticleFields{
		Header:           header,
		ShortDescription: "short",
		Text:             "text",
		PublishDate:      publish,
		Authors:          authors,
		Keywords:         keywords,
	}
}

func TestArticleStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewArticleStore(testRedisClient(t))

	created, err := s.Insert(ctx, entity.NewArticle(fields("first", time.Now(), []string{"b", "a"}, nil)))
	require.NoError(t, err)
	assert.Equal(t, int64(0), created.Version)
	assert.Equal(t, []string{"A", "B"}, created.Authors)

	found, err := s.FindActive(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "first", found.Header)

	found.Header = "second"
	saved, err := s.Save(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)

	// stale write
	_, err = s.Save(ctx, found)
	assert.ErrorIs(t, err, repository.ErrVersionConflict)

	deleted, err := s.Save(ctx, saved.MarkDeleted())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted.Version)

	gone, err := s.FindActive(ctx, created.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)

	n, err := s.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	list, err := s.ListActive(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestArticleStore_ListOrdering(t *testing.T) {
	ctx := context.Background()
	s := NewArticleStore(testRedisClient(t))

	var ids []string
	for _, h := range []string{"a", "b", "c"} {
		a, err := s.Insert(ctx, entity.NewArticle(fields(h, time.Now(), []string{"x"}, nil)))
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}

	all, err := s.ListActive(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[1], all[1].ID)
	assert.Equal(t, ids[0], all[2].ID)

	page, err := s.ListActive(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)
}

func TestArticleStore_Search(t *testing.T) {
	ctx := context.Background()
	s := NewArticleStore(testRedisClient(t))

	jan10 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	jan12 := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	_, err := s.Insert(ctx, entity.NewArticle(fields("one", jan10, []string{"jane"}, []string{"sport", "local"})))
	require.NoError(t, err)
	_, err = s.Insert(ctx, entity.NewArticle(fields("two", jan12, []string{"Jane"}, []string{"sport"})))
	require.NoError(t, err)

	author := "jane"
	criteria := repository.ArticleSearchCriteria{Author: &author, FromPublishDate: &jan10, ToPublishDate: &jan12}
	res, err := s.Search(ctx, repository.BuildArticleFilter(criteria), 10, 0)
	require.NoError(t, err)
	assert.Len(t, res, 2)

	keyword := "LOCAL"
	criteria.Keyword = &keyword
	res, err = s.Search(ctx, repository.BuildArticleFilter(criteria), 10, 0)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "one", res[0].Header)

	res, err = s.Search(ctx, repository.BuildArticleFilter(repository.ArticleSearchCriteria{}), 10, 1)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "one", res[0].Header)
}

func TestArticleStore_ConcurrentSave(t *testing.T) {
	ctx := context.Background()
	s := NewArticleStore(testRedisClient(t))

	created, err := s.Insert(ctx, entity.NewArticle(fields("first", time.Now(), []string{"x"}, nil)))
	require.NoError(t, err)

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Save(ctx, created.Clone())
			if err != nil && !errors.Is(err, repository.ErrVersionConflict) {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestArticleStore_Ping(t *testing.T) {
	s := NewArticleStore(testRedisClient(t))
	assert.NoError(t, s.Ping(context.Background()))
}

// afterFirstRangeHook runs fn once, right after the first ZREVRANGEBYLEX
// issued through the hooked client has returned.
type afterFirstRangeHook struct {
	once sync.Once
	fn   func(ctx context.Context)
}

func (h *afterFirstRangeHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *afterFirstRangeHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if cmd.Name() == "zrevrangebylex" {
			h.once.Do(func() { h.fn(ctx) })
		}
		return err
	}
}

func (h *afterFirstRangeHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestArticleStore_Search_StableUnderConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	writer := NewArticleStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	seeded := make(map[string]struct{})
	for i := 0; i < searchBatchSize+50; i++ {
		a, err := writer.Insert(ctx, entity.NewArticle(fields("seed", time.Now(), []string{"jane"}, nil)))
		require.NoError(t, err)
		seeded[a.ID] = struct{}{}
	}

	reader := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	reader.AddHook(&afterFirstRangeHook{fn: func(ctx context.Context) {
		// 1 バッチ目の読み取り後に新しい記事が先頭へ割り込む
		for i := 0; i < 5; i++ {
			_, err := writer.Insert(ctx, entity.NewArticle(fields("late", time.Now(), []string{"jane"}, nil)))
			require.NoError(t, err)
		}
	}})

	got, err := NewArticleStore(reader).Search(ctx, repository.BuildArticleFilter(repository.ArticleSearchCriteria{}), len(seeded), 0)
	require.NoError(t, err)

	seen := make(map[string]struct{}, len(got))
	for _, a := range got {
		_, dup := seen[a.ID]
		require.False(t, dup, "article %s returned twice", a.ID)
		seen[a.ID] = struct{}{}
	}
	assert.Equal(t, seeded, seen)
}
