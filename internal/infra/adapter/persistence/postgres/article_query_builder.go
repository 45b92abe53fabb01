// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"newspaper/internal/domain/entity"
	"newspaper/internal/repository"
)

// ArticleQueryBuilder renders an ArticleFilter into a WHERE clause over the
// articles table. Label clauses use JSONB operators on the document column;
// date clauses compare the publish_date column. Placeholders are numbered ($1, $2, ...).
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and arguments for the filter.
// Placeholder numbering starts at firstParam so callers can append arguments
// after the clause. Returns empty string if the filter has no clauses.
func (qb *ArticleQueryBuilder) BuildWhereClause(filter repository.ArticleFilter, firstParam int) (clause string, args []interface{}) {
	conditions := make([]string, 0, len(filter.Clauses))
	paramIndex := firstParam

	for _, c := range filter.Clauses {
		switch c.Kind {
		case repository.ClauseNotDeleted:
			conditions = append(conditions, "NOT deleted")
		case repository.ClauseAuthorsContain:
			conditions = append(conditions, labelCondition("authors", paramIndex))
			args = append(args, c.Value)
			paramIndex++
		case repository.ClauseKeywordsContain:
			conditions = append(conditions, labelCondition("keywords", paramIndex))
			args = append(args, c.Value)
			paramIndex++
		case repository.ClausePublishedAfter:
			conditions = append(conditions, fmt.Sprintf("publish_date > $%d::date", paramIndex))
			args = append(args, c.Date.Format(entity.DateLayout))
			paramIndex++
		case repository.ClausePublishedBefore:
			conditions = append(conditions, fmt.Sprintf("publish_date < $%d::date", paramIndex))
			args = append(args, c.Date.Format(entity.DateLayout))
			paramIndex++
		}
	}

	if len(conditions) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// labelCondition matches any element of a JSONB string array, ignoring case.
func labelCondition(field string, paramIndex int) string {
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM jsonb_array_elements_text(document->'%s') AS l(v) WHERE upper(l.v) = upper($%d))",
		field, paramIndex)
}
