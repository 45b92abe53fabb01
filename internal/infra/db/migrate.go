package db

import (
	"context"
	"database/sql"
	"fmt"
)

type migration struct {
	name string
	stmt string
}

var migrations = []migration{
	{"articles table", `
CREATE TABLE IF NOT EXISTS articles (
    id               TEXT PRIMARY KEY,
    document         JSONB NOT NULL,
    publish_date     DATE NOT NULL,
    deleted          BOOLEAN NOT NULL DEFAULT FALSE,
    version          BIGINT NOT NULL DEFAULT 0,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    last_modified_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	// 一覧・検索: WHERE NOT deleted ORDER BY id DESC
	{"active id index", `CREATE INDEX IF NOT EXISTS idx_articles_active_id ON articles(id DESC) WHERE NOT deleted`},
	// authors / keywords の要素検索用
	{"document gin index", `CREATE INDEX IF NOT EXISTS idx_articles_document_gin ON articles USING gin(document jsonb_path_ops)`},
	// 公開日の範囲検索用。式インデックスは text→date キャストが IMMUTABLE でないため使えない
	{"publish date index", `CREATE INDEX IF NOT EXISTS idx_articles_publish_date ON articles(publish_date) WHERE NOT deleted`},
}

// MigrateUp creates the articles schema in one transaction.
// Every statement is idempotent, so running it on each start is safe.
func MigrateUp(ctx context.Context, db *sql.DB) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, m := range migrations {
		if _, err = tx.ExecContext(ctx, m.stmt); err != nil {
			return fmt.Errorf("migrate: %s: %w", m.name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit: %w", err)
	}
	return nil
}
