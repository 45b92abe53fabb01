package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"newspaper/internal/domain/entity"
	"newspaper/internal/infra/adapter/persistence/document"
	"newspaper/internal/repository"
)

const articleColumns = `id, document, deleted, version, created_at, last_modified_at`

type ArticleRepo struct {
	db           *sql.DB
	queryBuilder *ArticleQueryBuilder
	now          func() time.Time
}

func NewArticleRepo(db *sql.DB) repository.ArticleStore {
	return &ArticleRepo{
		db:           db,
		queryBuilder: NewArticleQueryBuilder(),
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (repo *ArticleRepo) Insert(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("Insert: generate id: %w", err)
	}
	stored := article.Clone()
	stored.ID = id.String()
	stored.Deleted = false
	stored.Version = 0
	stored.CreatedAt = repo.now()
	stored.LastModifiedAt = stored.CreatedAt

	doc, err := document.MarshalContent(stored)
	if err != nil {
		return nil, fmt.Errorf("Insert: encode: %w", err)
	}

	const query = `
INSERT INTO articles (id, document, publish_date, deleted, version, created_at, last_modified_at)
VALUES ($1, $2::jsonb, $3::date, FALSE, 0, $4, $5)`
	if _, err := repo.db.ExecContext(ctx, query,
		stored.ID, string(doc), publishDate(stored), stored.CreatedAt, stored.LastModifiedAt); err != nil {
		return nil, fmt.Errorf("Insert: %w", err)
	}
	return stored, nil
}

func (repo *ArticleRepo) FindActive(ctx context.Context, id string) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE id = $1 AND NOT deleted`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindActive: %w", err)
	}
	return article, nil
}

// Save applies the new revision only while the persisted version still
// equals article.Version and the row is not deleted.
func (repo *ArticleRepo) Save(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	doc, err := document.MarshalContent(article)
	if err != nil {
		return nil, fmt.Errorf("Save: encode: %w", err)
	}

	const query = `
UPDATE articles
SET document = $1::jsonb, publish_date = $2::date, deleted = $3, version = version + 1, last_modified_at = $4
WHERE id = $5 AND version = $6 AND NOT deleted
RETURNING version, created_at, last_modified_at`
	stored := article.Clone()
	err = repo.db.QueryRowContext(ctx, query,
		string(doc), publishDate(article), article.Deleted, repo.now(), article.ID, article.Version,
	).Scan(&stored.Version, &stored.CreatedAt, &stored.LastModifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrVersionConflict
	}
	if err != nil {
		return nil, fmt.Errorf("Save: %w", err)
	}
	return stored, nil
}

func (repo *ArticleRepo) ListActive(ctx context.Context, limit, offset int) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE NOT deleted
ORDER BY id DESC
LIMIT $1 OFFSET $2`
	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListActive: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles, err := scanArticles(rows, limit)
	if err != nil {
		return nil, fmt.Errorf("ListActive: %w", err)
	}
	return articles, nil
}

func (repo *ArticleRepo) Search(ctx context.Context, filter repository.ArticleFilter, limit, offset int) ([]*entity.Article, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filter, 1)
	query := fmt.Sprintf(`
SELECT %s
FROM articles
%s
ORDER BY id DESC
LIMIT $%d OFFSET $%d`, articleColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles, err := scanArticles(rows, limit)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	return articles, nil
}

func (repo *ArticleRepo) CountActive(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles WHERE NOT deleted`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountActive: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) Ping(ctx context.Context) error {
	return repo.db.PingContext(ctx)
}

// publishDate is the value of the publish_date column, which mirrors the
// document field so date clauses can use a plain B-tree index.
func publishDate(a *entity.Article) string {
	return a.PublishDate.Format(entity.DateLayout)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var (
		article entity.Article
		doc     []byte
	)
	if err := row.Scan(&article.ID, &doc, &article.Deleted, &article.Version,
		&article.CreatedAt, &article.LastModifiedAt); err != nil {
		return nil, err
	}
	if err := document.UnmarshalContent(doc, &article); err != nil {
		return nil, fmt.Errorf("decode %s: %w", article.ID, err)
	}
	return &article, nil
}

func scanArticles(rows *sql.Rows, capacity int) ([]*entity.Article, error) {
	// パフォーマンス最適化: 事前割り当ては上限付き
	capacity = max(0, min(capacity, 100))
	articles := make([]*entity.Article, 0, capacity)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}
