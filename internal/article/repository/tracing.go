package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/spaceflight-news/internal/article/domain"
)

var tracer = otel.Tracer("article-repository")

// TracingArticleRepository wraps an ArticleRepository with spans
type TracingArticleRepository struct {
	next domain.ArticleRepository
}

// NewTracingArticleRepository creates a new repository with tracing
func NewTracingArticleRepository(next domain.ArticleRepository) *TracingArticleRepository {
	return &TracingArticleRepository{next: next}
}

// Upsert with tracing
func (r *TracingArticleRepository) Upsert(ctx context.Context, a *domain.Article) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.Upsert",
		trace.WithAttributes(
			attribute.Int64("article.external_id", a.ExternalID),
			attribute.String("article.news_site", a.NewsSite),
		),
	)
	defer span.End()

	created, err := r.next.Upsert(ctx, a)
	if err != nil {
		recordError(span, err)
		return false, err
	}

	span.SetAttributes(
		attribute.Int("article.id", int(a.ID)),
		attribute.Bool("article.created", created),
	)
	return created, nil
}

// FindByID with tracing
func (r *TracingArticleRepository) FindByID(ctx context.Context, id uint) (*domain.Article, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("article.id", int(id))),
	)
	defer span.End()

	article, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return article, nil
}

// Search with tracing
func (r *TracingArticleRepository) Search(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Search",
		trace.WithAttributes(
			attribute.String("filter.search", filter.Search),
			attribute.String("filter.news_site", filter.NewsSite),
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	articles, total, err := r.next.Search(ctx, filter)
	if err != nil {
		recordError(span, err)
		return nil, 0, err
	}

	span.SetAttributes(attribute.Int64("result.total", total))
	return articles, total, nil
}

// MonthlyReport with tracing
func (r *TracingArticleRepository) MonthlyReport(ctx context.Context) ([]domain.MonthlyReport, error) {
	ctx, span := tracer.Start(ctx, "repository.MonthlyReport")
	defer span.End()

	reports, err := r.next.MonthlyReport(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.months", len(reports)))
	return reports, nil
}

// TracingFavoriteRepository wraps a FavoriteRepository with spans
type TracingFavoriteRepository struct {
	next domain.FavoriteRepository
}

// NewTracingFavoriteRepository creates a new repository with tracing
func NewTracingFavoriteRepository(next domain.FavoriteRepository) *TracingFavoriteRepository {
	return &TracingFavoriteRepository{next: next}
}

// Add with tracing
func (r *TracingFavoriteRepository) Add(ctx context.Context, userID, articleID uint) (*domain.Favorite, bool, error) {
	ctx, span := tracer.Start(ctx, "repository.AddFavorite",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("article.id", int(articleID)),
		),
	)
	defer span.End()

	fav, created, err := r.next.Add(ctx, userID, articleID)
	if err != nil {
		recordError(span, err)
		return nil, false, err
	}

	span.SetAttributes(attribute.Bool("favorite.created", created))
	return fav, created, nil
}

// ListByUser with tracing
func (r *TracingFavoriteRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]domain.Favorite, int64, error) {
	ctx, span := tracer.Start(ctx, "repository.ListFavorites",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("page.limit", limit),
			attribute.Int("page.offset", offset),
		),
	)
	defer span.End()

	favorites, total, err := r.next.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		recordError(span, err)
		return nil, 0, err
	}

	span.SetAttributes(attribute.Int64("result.total", total))
	return favorites, total, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
