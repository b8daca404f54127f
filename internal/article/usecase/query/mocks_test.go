package query

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tair/spaceflight-news/internal/article/domain"
)

// MockArticleRepository is a mock implementation of domain.ArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Upsert(ctx context.Context, a *domain.Article) (bool, error) {
	args := m.Called(ctx, a)
	return args.Bool(0), args.Error(1)
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id uint) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) Search(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Article), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepository) MonthlyReport(ctx context.Context) ([]domain.MonthlyReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyReport), args.Error(1)
}

// MockReportCache is a mock implementation of domain.ReportCache
type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) GetMonthly(ctx context.Context) ([]domain.MonthlyReport, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.MonthlyReport), args.Bool(1), args.Error(2)
}

func (m *MockReportCache) SetMonthly(ctx context.Context, reports []domain.MonthlyReport) error {
	return m.Called(ctx, reports).Error(0)
}

func (m *MockReportCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockFavoriteRepository is a mock implementation of domain.FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, articleID uint) (*domain.Favorite, bool, error) {
	args := m.Called(ctx, userID, articleID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Favorite), args.Bool(1), args.Error(2)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]domain.Favorite, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Favorite), args.Get(1).(int64), args.Error(2)
}
