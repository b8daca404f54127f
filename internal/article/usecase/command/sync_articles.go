package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/tair/spaceflight-news/internal/article/classifier"
	"github.com/tair/spaceflight-news/internal/article/domain"
	"github.com/tair/spaceflight-news/internal/article/feed"
	"github.com/tair/spaceflight-news/pkg/logger"
)

// DefaultSyncLimit is used when a command does not set a positive limit
const DefaultSyncLimit = 100

// EventPublisher announces completed synchronization runs
type EventPublisher interface {
	PublishSyncCompleted(ctx context.Context, stats domain.SyncStats) error
}

// SyncArticlesCommand represents one pass over the external feed
type SyncArticlesCommand struct {
	Limit int
}

// SyncArticlesHandler fetches, filters, classifies and stores feed articles.
// Runs are not coordinated; callers must not start two at once.
type SyncArticlesHandler struct {
	fetcher    feed.Fetcher
	repo       domain.ArticleRepository
	classifier *classifier.Classifier
	cache      domain.ReportCache
	publisher  EventPublisher
	metrics    *SyncMetrics
}

// NewSyncArticlesHandler creates a sync handler; publisher and metrics may be nil
func NewSyncArticlesHandler(
	fetcher feed.Fetcher,
	repo domain.ArticleRepository,
	c *classifier.Classifier,
	cache domain.ReportCache,
	publisher EventPublisher,
	metrics *SyncMetrics,
) *SyncArticlesHandler {
	return &SyncArticlesHandler{
		fetcher:    fetcher,
		repo:       repo,
		classifier: c,
		cache:      cache,
		publisher:  publisher,
		metrics:    metrics,
	}
}

// Handle executes the sync command. A feed failure aborts the run with Errors=1 and
// an error wrapping domain.ErrFeedUnavailable; per-article failures are counted and skipped.
// Once the page is fetched the batch runs to completion even if ctx is cancelled.
func (h *SyncArticlesHandler) Handle(ctx context.Context, cmd SyncArticlesCommand) (domain.SyncStats, error) {
	start := time.Now()
	defer func() { h.metrics.observeDuration(time.Since(start).Seconds()) }()

	limit := cmd.Limit
	if limit <= 0 {
		limit = DefaultSyncLimit
	}

	raws, err := h.fetcher.FetchArticles(ctx, limit)
	if err != nil {
		if !errors.Is(err, domain.ErrFeedUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
		}
		h.metrics.observe(OutcomeError)
		logger.Error(ctx).Err(err).Int("limit", limit).Msg("Failed to fetch articles")
		return domain.SyncStats{Errors: 1}, fmt.Errorf("failed to fetch articles: %w", err)
	}

	ctx = context.WithoutCancel(ctx)

	var stats domain.SyncStats
	for _, raw := range raws {
		stats.Processed++
		if raw.Err == nil && h.classifier.IsCensored(raw.Title) {
			stats.Filtered++
			h.metrics.observe(OutcomeFiltered)
			continue
		}

		if err := h.store(ctx, raw); err != nil {
			stats.Errors++
			h.metrics.observe(OutcomeError)
			logger.Warn(ctx).Err(err).Int64("external_id", raw.ID).Msg("Skipping article")
			continue
		}
		stats.Saved++
		h.metrics.observe(OutcomeSaved)
	}

	if stats.Saved > 0 {
		h.announce(ctx, stats)
	}

	logger.Info(ctx).
		Int("processed", stats.Processed).
		Int("saved", stats.Saved).
		Int("filtered", stats.Filtered).
		Int("errors", stats.Errors).
		Dur("duration", time.Since(start)).
		Msg("Article sync completed")

	return stats, nil
}

func (h *SyncArticlesHandler) store(ctx context.Context, raw feed.RawArticle) error {
	article, err := toArticle(raw)
	if err != nil {
		return err
	}
	article.SentimentScore = h.classifier.Sentiment(article.Title)

	if _, err := h.repo.Upsert(ctx, article); err != nil {
		return err
	}
	return nil
}

// announce invalidates the report cache and publishes the run; failures are logged only
func (h *SyncArticlesHandler) announce(ctx context.Context, stats domain.SyncStats) {
	if h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			logger.Warn(ctx).Err(err).Msg("Failed to invalidate report cache")
		}
	}
	if h.publisher != nil {
		if err := h.publisher.PublishSyncCompleted(ctx, stats); err != nil {
			logger.Warn(ctx).Err(err).Msg("Failed to publish sync event")
		}
	}
}

func toArticle(raw feed.RawArticle) (*domain.Article, error) {
	switch {
	case raw.Err != nil:
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArticle, raw.Err)
	case raw.ID == 0:
		return nil, fmt.Errorf("%w: missing id", domain.ErrInvalidArticle)
	case raw.Title == "":
		return nil, fmt.Errorf("%w: missing title", domain.ErrInvalidArticle)
	case raw.URL == "":
		return nil, fmt.Errorf("%w: missing url", domain.ErrInvalidArticle)
	case raw.NewsSite == "":
		return nil, fmt.Errorf("%w: missing news_site", domain.ErrInvalidArticle)
	case raw.PublishedAt == "":
		return nil, fmt.Errorf("%w: missing published_at", domain.ErrInvalidArticle)
	}

	publishedAt, err := dateparse.ParseIn(raw.PublishedAt, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: published_at %q: %v", domain.ErrInvalidArticle, raw.PublishedAt, err)
	}

	return &domain.Article{
		ExternalID:  raw.ID,
		Title:       raw.Title,
		URL:         raw.URL,
		NewsSite:    raw.NewsSite,
		PublishedAt: publishedAt.UTC(),
	}, nil
}
