// Package document defines the JSON shape under which articles are persisted
// by the document-oriented store adapters.
package document

import (
	"encoding/json"
	"fmt"
	"time"

	"newspaper/internal/domain/entity"
)

// Content is the editable part of an article, stored as a JSON document.
type Content struct {
	Header           string   `json:"header"`
	ShortDescription string   `json:"shortDescription"`
	Text             string   `json:"text"`
	PublishDate      string   `json:"publishDate"`
	Authors          []string `json:"authors"`
	Keywords         []string `json:"keywords"`
}

// Record is a complete article as persisted by key-value stores.
type Record struct {
	ID             string    `json:"id"`
	Content        Content   `json:"content"`
	Deleted        bool      `json:"deleted"`
	Version        int64     `json:"version"`
	CreatedAt      time.Time `json:"createdAt"`
	LastModifiedAt time.Time `json:"lastModifiedAt"`
}

// ContentOf extracts the document content from an article.
func ContentOf(a *entity.Article) Content {
	return Content{
		Header:           a.Header,
		ShortDescription: a.ShortDescription,
		Text:             a.Text,
		PublishDate:      a.PublishDate.UTC().Format(entity.DateLayout),
		Authors:          nonNil(a.Authors),
		Keywords:         nonNil(a.Keywords),
	}
}

// Apply copies the content onto a.
func (c Content) Apply(a *entity.Article) error {
	pd, err := entity.ParseDate(c.PublishDate)
	if err != nil {
		return fmt.Errorf("publishDate: %w", err)
	}
	a.Header = c.Header
	a.ShortDescription = c.ShortDescription
	a.Text = c.Text
	a.PublishDate = pd
	a.Authors = nonNil(c.Authors)
	a.Keywords = nonNil(c.Keywords)
	return nil
}

// MarshalContent encodes the content of a as JSON.
func MarshalContent(a *entity.Article) ([]byte, error) {
	return json.Marshal(ContentOf(a))
}

// UnmarshalContent decodes JSON content onto a.
func UnmarshalContent(data []byte, a *entity.Article) error {
	var c Content
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	return c.Apply(a)
}

// RecordOf converts an article into its persisted record.
func RecordOf(a *entity.Article) Record {
	return Record{
		ID:             a.ID,
		Content:        ContentOf(a),
		Deleted:        a.Deleted,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt.UTC(),
		LastModifiedAt: a.LastModifiedAt.UTC(),
	}
}

// Article converts the record back into an article.
func (r Record) Article() (*entity.Article, error) {
	a := &entity.Article{
		ID:             r.ID,
		Deleted:        r.Deleted,
		Version:        r.Version,
		CreatedAt:      r.CreatedAt,
		LastModifiedAt: r.LastModifiedAt,
	}
	if err := r.Content.Apply(a); err != nil {
		return nil, err
	}
	return a, nil
}

// MarshalRecord encodes a full article record as JSON.
func MarshalRecord(a *entity.Article) ([]byte, error) {
	return json.Marshal(RecordOf(a))
}

// UnmarshalRecord decodes a full article record.
func UnmarshalRecord(data []byte) (*entity.Article, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return r.Article()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
