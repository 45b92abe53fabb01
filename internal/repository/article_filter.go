package repository

import (
	"strings"
	"time"

	"newspaper/internal/domain/entity"
)

// ArticleSearchCriteria contains optional search parameters.
// A nil pointer or an empty string means the parameter is absent.
type ArticleSearchCriteria struct {
	Author          *string
	Keyword         *string
	FromPublishDate *time.Time // inclusive
	ToPublishDate   *time.Time // inclusive
}

// ClauseKind identifies the predicate a Clause expresses.
type ClauseKind int

const (
	ClauseNotDeleted ClauseKind = iota
	ClauseAuthorsContain
	ClauseKeywordsContain
	ClausePublishedAfter
	ClausePublishedBefore
)

func (k ClauseKind) String() string {
	switch k {
	case ClauseNotDeleted:
		return "not_deleted"
	case ClauseAuthorsContain:
		return "authors_contain"
	case ClauseKeywordsContain:
		return "keywords_contain"
	case ClausePublishedAfter:
		return "published_after"
	case ClausePublishedBefore:
		return "published_before"
	default:
		return "unknown"
	}
}

// Clause is a single predicate over an article. Only the field matching
// Kind is meaningful.
type Clause struct {
	Kind  ClauseKind
	Value string
	Date  time.Time
}

// NotDeleted matches articles that have not been soft-deleted.
func NotDeleted() Clause { return Clause{Kind: ClauseNotDeleted} }

// AuthorsContain matches articles with an author equal to author, ignoring case.
func AuthorsContain(author string) Clause {
	return Clause{Kind: ClauseAuthorsContain, Value: author}
}

// KeywordsContain matches articles with a keyword equal to keyword, ignoring case.
func KeywordsContain(keyword string) Clause {
	return Clause{Kind: ClauseKeywordsContain, Value: keyword}
}

// PublishedAfter matches articles published strictly after d.
func PublishedAfter(d time.Time) Clause {
	return Clause{Kind: ClausePublishedAfter, Date: entity.TruncateToDate(d)}
}

// PublishedBefore matches articles published strictly before d.
func PublishedBefore(d time.Time) Clause {
	return Clause{Kind: ClausePublishedBefore, Date: entity.TruncateToDate(d)}
}

// Matches evaluates the clause against a.
func (c Clause) Matches(a *entity.Article) bool {
	switch c.Kind {
	case ClauseNotDeleted:
		return !a.Deleted
	case ClauseAuthorsContain:
		return containsFold(a.Authors, c.Value)
	case ClauseKeywordsContain:
		return containsFold(a.Keywords, c.Value)
	case ClausePublishedAfter:
		return entity.TruncateToDate(a.PublishDate).After(c.Date)
	case ClausePublishedBefore:
		return entity.TruncateToDate(a.PublishDate).Before(c.Date)
	default:
		return false
	}
}

// ArticleFilter is a conjunction of clauses.
type ArticleFilter struct {
	Clauses []Clause
}

// Matches reports whether a satisfies every clause.
func (f ArticleFilter) Matches(a *entity.Article) bool {
	if a == nil {
		return false
	}
	for _, c := range f.Clauses {
		if !c.Matches(a) {
			return false
		}
	}
	return true
}

type clauseStep struct {
	present bool
	build   func() Clause
}

// BuildArticleFilter folds the present criteria into a filter that always
// starts with the NotDeleted clause. Date bounds are widened by one day and
// compared strictly so both ends stay inclusive.
func BuildArticleFilter(c ArticleSearchCriteria) ArticleFilter {
	steps := []clauseStep{
		{present: present(c.Author), build: func() Clause { return AuthorsContain(*c.Author) }},
		{present: present(c.Keyword), build: func() Clause { return KeywordsContain(*c.Keyword) }},
		{present: c.FromPublishDate != nil, build: func() Clause {
			return PublishedAfter(c.FromPublishDate.AddDate(0, 0, -1))
		}},
		{present: c.ToPublishDate != nil, build: func() Clause {
			return PublishedBefore(c.ToPublishDate.AddDate(0, 0, 1))
		}},
	}

	filter := ArticleFilter{Clauses: []Clause{NotDeleted()}}
	for _, s := range steps {
		if s.present {
			filter.Clauses = append(filter.Clauses, s.build())
		}
	}
	return filter
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
