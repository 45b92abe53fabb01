// Package article provides HTTP handlers for article-related endpoints.
// It includes handlers for creating, listing, searching, updating, and deleting articles.
package article

import (
	"time"

	"newspaper/internal/domain/entity"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID               string    `json:"id" example:"0190f1f2-8c1e-7a3b-9d2a-1c2b3d4e5f60"`
	Header           string    `json:"header" example:"港が再開"`
	ShortDescription string    `json:"shortDescription" example:"二年ぶりに旧港が再開しました"`
	Text             string    `json:"text" example:"改修工事を経て、旧港が本日再開した。"`
	PublishDate      string    `json:"publishDate" example:"2024-01-10"`
	Authors          []string  `json:"authors" example:"JANE DOE"`
	Keywords         []string  `json:"keywords" example:"LOCAL"`
	Version          int64     `json:"version" example:"0"`
	CreatedAt        time.Time `json:"createdAt" example:"2024-01-10T09:00:00Z"`
	LastModifiedAt   time.Time `json:"lastModifiedAt" example:"2024-01-10T09:00:00Z"`
}

// CreateRequest is the body of POST /api/v1/articles.
type CreateRequest struct {
	Header           string   `json:"header" example:"港が再開"`
	ShortDescription string   `json:"shortDescription" example:"二年ぶりに旧港が再開しました"`
	Text             string   `json:"text" example:"改修工事を経て、旧港が本日再開した。"`
	PublishDate      string   `json:"publishDate" example:"2024-01-10"`
	Authors          []string `json:"authors" example:"jane doe"`
	Keywords         []string `json:"keywords" example:"local"`
}

// UpdateRequest is the body of PUT /api/v1/articles/{id}.
// Version must be greater than the stored version.
type UpdateRequest struct {
	CreateRequest
	Version *int64 `json:"version" example:"1"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:               a.ID,
		Header:           a.Header,
		ShortDescription: a.ShortDescription,
		Text:             a.Text,
		PublishDate:      formatDate(a.PublishDate),
		Authors:          nonNil(a.Authors),
		Keywords:         nonNil(a.Keywords),
		Version:          a.Version,
		CreatedAt:        a.CreatedAt,
		LastModifiedAt:   a.LastModifiedAt,
	}
}

func toDTOs(articles []*entity.Article) []DTO {
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.DateLayout)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
