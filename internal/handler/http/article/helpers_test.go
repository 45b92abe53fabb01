package article_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"newspaper/internal/domain/entity"
	"newspaper/internal/handler/http/article"
	"newspaper/internal/infra/adapter/persistence/memory"
	"newspaper/internal/repository"
	artUC "newspaper/internal/usecase/article"
)

/* ───────── テスト用サーバー ───────── */

type testServer struct {
	mux   *http.ServeMux
	store *memory.ArticleStore
	svc   artUC.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewArticleStore()
	svc := artUC.Service{Store: store}
	mux := http.NewServeMux()
	article.Register(mux, svc, article.Options{})
	return &testServer{mux: mux, store: store, svc: svc}
}

func newServerWithStore(t *testing.T, store repository.ArticleStore) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	article.Register(mux, artUC.Service{Store: store}, article.Options{})
	return mux
}

func (s *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, s.mux, method, target, body)
}

func serve(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// seed は記事を直接ストアに保存する
func (s *testServer) seed(t *testing.T, publishDate string, authors, keywords []string) *entity.Article {
	t.Helper()
	d, err := entity.ParseDate(publishDate)
	require.NoError(t, err)
	a, err := s.store.Insert(context.Background(), entity.NewArticle(entity.ArticleFields{
		Header:           "Header " + publishDate,
		ShortDescription: "Short",
		Text:             "Text",
		PublishDate:      d,
		Authors:          authors,
		Keywords:         keywords,
	}))
	require.NoError(t, err)
	return a
}

func validCreateRequest() article.CreateRequest {
	return article.CreateRequest{
		Header:           "Harbour reopens",
		ShortDescription: "The old harbour is open again",
		Text:             "After two years of works the harbour has reopened.",
		PublishDate:      "2024-01-10",
		Authors:          []string{"jane doe", "Bob"},
		Keywords:         []string{"local"},
	}
}

func decodeDTO(t *testing.T, rec *httptest.ResponseRecorder) article.DTO {
	t.Helper()
	var out article.DTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func decodeDTOs(t *testing.T, rec *httptest.ResponseRecorder) []article.DTO {
	t.Helper()
	var out []article.DTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func decodeErrorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out["error"]
}

// failingStore は全操作で err を返す
type failingStore struct{ err error }

func (f failingStore) Insert(context.Context, *entity.Article) (*entity.Article, error) {
	return nil, f.err
}
func (f failingStore) FindActive(context.Context, string) (*entity.Article, error) {
	return nil, f.err
}
func (f failingStore) Save(context.Context, *entity.Article) (*entity.Article, error) {
	return nil, f.err
}
func (f failingStore) ListActive(context.Context, int, int) ([]*entity.Article, error) {
	return nil, f.err
}
func (f failingStore) Search(context.Context, repository.ArticleFilter, int, int) ([]*entity.Article, error) {
	return nil, f.err
}
func (f failingStore) CountActive(context.Context) (int64, error) { return 0, f.err }
func (f failingStore) Ping(context.Context) error                 { return f.err }
