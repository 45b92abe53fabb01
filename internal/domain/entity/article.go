// Package entity defines the core domain entities and validation logic for the application.
// It contains the Article aggregate, its state transitions, its validation rules
// and domain-specific errors. Nothing in this package knows how articles are stored.
package entity

import (
	"sort"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of a publish date.
const DateLayout = "2006-01-02"

// Article represents a published newspaper article.
// ID, CreatedAt, LastModifiedAt and Version are owned by the store.
type Article struct {
	ID               string
	Header           string
	ShortDescription string
	Text             string
	PublishDate      time.Time
	Authors          []string
	Keywords         []string
	Deleted          bool
	CreatedAt        time.Time
	LastModifiedAt   time.Time
	Version          int64
}

// ArticleFields holds the caller-editable part of an article.
type ArticleFields struct {
	Header           string
	ShortDescription string
	Text             string
	PublishDate      time.Time
	Authors          []string
	Keywords         []string
}

// NewArticle builds a not yet persisted article from validated fields.
func NewArticle(f ArticleFields) *Article {
	return &Article{
		Header:           f.Header,
		ShortDescription: f.ShortDescription,
		Text:             f.Text,
		PublishDate:      TruncateToDate(f.PublishDate),
		Authors:          Canonicalize(f.Authors),
		Keywords:         Canonicalize(f.Keywords),
		Deleted:          false,
	}
}

// Update replaces every editable field in place and returns the article.
// ID, CreatedAt, Deleted and Version are left untouched.
func (a *Article) Update(f ArticleFields) *Article {
	a.Header = f.Header
	a.ShortDescription = f.ShortDescription
	a.Text = f.Text
	a.PublishDate = TruncateToDate(f.PublishDate)
	a.Authors = Canonicalize(f.Authors)
	a.Keywords = Canonicalize(f.Keywords)
	return a
}

// MarkDeleted flags the article as soft-deleted and returns it.
func (a *Article) MarkDeleted() *Article {
	a.Deleted = true
	return a
}

// Clone returns a deep copy so stores can hand out values callers may mutate.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	c := *a
	c.Authors = append([]string(nil), a.Authors...)
	c.Keywords = append([]string(nil), a.Keywords...)
	return &c
}

// Canonicalize collapses exact duplicates, upper-cases every label and sorts
// the result ascending. Labels differing only by case survive as separate
// entries because deduplication happens before case folding.
// The result is never nil.
func Canonicalize(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, strings.ToUpper(l))
	}
	sort.Strings(out)
	return out
}

// TruncateToDate drops the time-of-day part and normalizes to UTC midnight.
func TruncateToDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD publish date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
