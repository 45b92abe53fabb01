package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"newspaper/internal/common/pagination"
	"newspaper/internal/domain/entity"
	"newspaper/internal/observability/tracing"
	"newspaper/internal/repository"
)

// CreateInput represents the input parameters for creating a new article.
type CreateInput struct {
	Header           string
	ShortDescription string
	Text             string
	PublishDate      time.Time
	Authors          []string
	Keywords         []string
}

func (in CreateInput) fields() entity.ArticleFields {
	return entity.ArticleFields{
		Header:           in.Header,
		ShortDescription: in.ShortDescription,
		Text:             in.Text,
		PublishDate:      in.PublishDate,
		Authors:          in.Authors,
		Keywords:         in.Keywords,
	}
}

// UpdateInput replaces every editable field of an article.
// Version must be strictly greater than the stored version.
type UpdateInput struct {
	Header           string
	ShortDescription string
	Text             string
	PublishDate      time.Time
	Authors          []string
	Keywords         []string
	Version          int64
}

func (in UpdateInput) fields() entity.ArticleFields {
	return entity.ArticleFields{
		Header:           in.Header,
		ShortDescription: in.ShortDescription,
		Text:             in.Text,
		PublishDate:      in.PublishDate,
		Authors:          in.Authors,
		Keywords:         in.Keywords,
	}
}

// Service provides article management use cases.
// It handles business logic for article operations and delegates persistence to the store.
type Service struct {
	Store repository.ArticleStore
	// Events receives lifecycle events; nil disables them.
	Events     EventRecorder
	Pagination pagination.Config
	// Tracer defaults to the global application tracer.
	Tracer trace.Tracer
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tr := s.Tracer
	if tr == nil {
		tr = tracing.GetTracer()
	}
	return tr.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Service) record(ctx context.Context, ev LifecycleEvent) {
	if s.Events == nil {
		return
	}
	s.Events.Record(ctx, ev)
}

// Create validates the input and stores a new article with version 0.
// Returns a ValidationError if any input field is invalid.
func (s *Service) Create(ctx context.Context, in CreateInput) (_ *entity.Article, err error) {
	ctx, span := s.startSpan(ctx, "article.Create")
	defer func() { endSpan(span, err) }()

	f := in.fields()
	if err := entity.ValidateArticleFields(f); err != nil {
		return nil, err
	}

	stored, err := s.Store.Insert(ctx, entity.NewArticle(f))
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	span.SetAttributes(attribute.String("article.id", stored.ID))
	s.record(ctx, LifecycleEvent{Type: EventCreated, ID: stored.ID, Version: stored.Version})
	return stored, nil
}

// Get retrieves a single non-deleted article by its ID.
// Returns ErrArticleNotFound if the article does not exist or was deleted.
func (s *Service) Get(ctx context.Context, id string) (_ *entity.Article, err error) {
	ctx, span := s.startSpan(ctx, "article.Get", attribute.String("article.id", id))
	defer func() { endSpan(span, err) }()
	return s.get(ctx, id)
}

func (s *Service) get(ctx context.Context, id string) (*entity.Article, error) {
	art, err := s.Store.FindActive(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, notFound(id)
	}
	return art, nil
}

// Update replaces the editable fields of an article.
// Returns ErrArticleNotFound if the article does not exist and
// ErrOutdatedVersion if in.Version is not greater than the stored version.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (_ *entity.Article, err error) {
	ctx, span := s.startSpan(ctx, "article.Update",
		attribute.String("article.id", id),
		attribute.Int64("article.requested_version", in.Version))
	defer func() { endSpan(span, err) }()

	f := in.fields()
	if err := entity.ValidateArticleFields(f); err != nil {
		return nil, err
	}

	art, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if art.Version >= in.Version {
		return nil, outdated(id, art.Version, nil)
	}

	saved, err := s.Store.Save(ctx, art.Update(f))
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, outdated(id, art.Version, err)
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	s.record(ctx, LifecycleEvent{Type: EventUpdated, ID: saved.ID, Version: saved.Version})
	return saved, nil
}

// Delete soft-deletes an article.
// Returns ErrArticleNotFound if the article does not exist or was already deleted.
func (s *Service) Delete(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "article.Delete", attribute.String("article.id", id))
	defer func() { endSpan(span, err) }()

	art, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	saved, err := s.Store.Save(ctx, art.MarkDeleted())
	if err != nil {
		// 同時に削除・更新された
		if errors.Is(err, repository.ErrVersionConflict) {
			return outdated(id, art.Version, err)
		}
		return fmt.Errorf("delete article: %w", err)
	}
	s.record(ctx, LifecycleEvent{Type: EventDeleted, ID: saved.ID, Version: saved.Version})
	return nil
}

// List returns non-deleted articles, newest first.
func (s *Service) List(ctx context.Context, params pagination.Params) (_ []*entity.Article, err error) {
	params = params.WithDefaults(s.Pagination)
	ctx, span := s.startSpan(ctx, "article.List",
		attribute.Int("pagination.limit", params.Limit),
		attribute.Int("pagination.offset", params.Offset))
	defer func() { endSpan(span, err) }()

	articles, err := s.Store.ListActive(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Search returns non-deleted articles matching every present criterion,
// newest first. Nil criteria are unbounded.
func (s *Service) Search(ctx context.Context, criteria repository.ArticleSearchCriteria, params pagination.Params) (_ []*entity.Article, err error) {
	params = params.WithDefaults(s.Pagination)
	filter := repository.BuildArticleFilter(criteria)
	ctx, span := s.startSpan(ctx, "article.Search",
		attribute.Int("search.clauses", len(filter.Clauses)),
		attribute.Int("pagination.limit", params.Limit),
		attribute.Int("pagination.offset", params.Offset))
	defer func() { endSpan(span, err) }()

	articles, err := s.Store.Search(ctx, filter, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return articles, nil
}

// CountActive returns the number of non-deleted articles.
func (s *Service) CountActive(ctx context.Context) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "article.CountActive")
	defer func() { endSpan(span, err) }()

	n, err := s.Store.CountActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}
