package query

import (
	"context"
	"fmt"

	"github.com/tair/spaceflight-news/internal/article/domain"
	"github.com/tair/spaceflight-news/pkg/logger"
)

// MonthlyReportQuery requests the per-month article aggregate
type MonthlyReportQuery struct{}

// MonthlyReportHandler handles monthly report query
type MonthlyReportHandler struct {
	repo  domain.ArticleRepository
	cache domain.ReportCache
}

// NewMonthlyReportHandler creates a new monthly report handler; cache may be nil
func NewMonthlyReportHandler(repo domain.ArticleRepository, cache domain.ReportCache) *MonthlyReportHandler {
	return &MonthlyReportHandler{repo: repo, cache: cache}
}

// Handle returns one entry per month with stored articles, newest month first.
// Cache failures fall through to the database.
func (h *MonthlyReportHandler) Handle(ctx context.Context, _ MonthlyReportQuery) ([]domain.MonthlyReport, error) {
	if h.cache != nil {
		reports, ok, err := h.cache.GetMonthly(ctx)
		if err != nil {
			logger.Warn(ctx).Err(err).Msg("Report cache read failed")
		} else if ok {
			return reports, nil
		}
	}

	reports, err := h.repo.MonthlyReport(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly report: %w", err)
	}
	if reports == nil {
		reports = []domain.MonthlyReport{}
	}

	if h.cache != nil {
		if err := h.cache.SetMonthly(ctx, reports); err != nil {
			logger.Warn(ctx).Err(err).Msg("Report cache write failed")
		}
	}
	return reports, nil
}
