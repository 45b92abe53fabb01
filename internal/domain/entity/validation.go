package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxHeaderLength is the maximum number of characters allowed in a header.
const MaxHeaderLength = 250

// ValidateArticleFields checks the field presence and length rules of an article.
// It returns the first violation as a *ValidationError.
func ValidateArticleFields(f ArticleFields) error {
	if isBlank(f.Header) {
		return &ValidationError{Field: "header", Message: "is required"}
	}
	if utf8.RuneCountInString(f.Header) > MaxHeaderLength {
		return &ValidationError{
			Field:   "header",
			Message: fmt.Sprintf("must not exceed %d characters", MaxHeaderLength),
		}
	}
	if isBlank(f.ShortDescription) {
		return &ValidationError{Field: "shortDescription", Message: "is required"}
	}
	if isBlank(f.Text) {
		return &ValidationError{Field: "text", Message: "is required"}
	}
	if f.PublishDate.IsZero() {
		return &ValidationError{Field: "publishDate", Message: "is required"}
	}
	if len(f.Authors) == 0 {
		return &ValidationError{Field: "authors", Message: "must not be empty"}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
