package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/spaceflight-news/internal/article/domain"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// GormArticleRepository implements ArticleRepository using GORM
type GormArticleRepository struct {
	db *gorm.DB
}

// NewGormArticleRepository creates a new GORM article repository
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// Upsert writes the article in its own transaction. The row keyed by ExternalID is
// created or has its mutable fields overwritten, and the stored row is copied back into a.
func (r *GormArticleRepository) Upsert(ctx context.Context, a *domain.Article) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Article
		err := tx.Select("id").Where("external_id = ?", a.ExternalID).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
		case err != nil:
			return fmt.Errorf("failed to look up article %d: %w", a.ExternalID, err)
		}

		row := *a
		row.ID = 0
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "url", "news_site", "published_at", "sentiment_score", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to upsert article %d: %w", a.ExternalID, err)
		}

		var stored domain.Article
		if err := tx.Where("external_id = ?", a.ExternalID).Take(&stored).Error; err != nil {
			return fmt.Errorf("failed to reload article %d: %w", a.ExternalID, err)
		}
		*a = stored
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// FindByID retrieves an article by its primary key
func (r *GormArticleRepository) FindByID(ctx context.Context, id uint) (*domain.Article, error) {
	var article domain.Article
	if err := r.db.WithContext(ctx).Take(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	return &article, nil
}

// Search lists stored articles newest-published first, with the total match count
func (r *GormArticleRepository) Search(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, int64, error) {
	matches := func(db *gorm.DB) *gorm.DB {
		if s := strings.TrimSpace(filter.Search); s != "" {
			db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(s)+"%")
		}
		if filter.NewsSite != "" {
			db = db.Where("news_site = ?", filter.NewsSite)
		}
		if filter.Sentiment != nil {
			db = db.Where("sentiment_score = ?", *filter.Sentiment)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Article{}).Scopes(matches).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	articles := []domain.Article{}
	if err := r.db.WithContext(ctx).
		Scopes(matches).
		Order("published_at DESC, id DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&articles).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search articles: %w", err)
	}
	return articles, total, nil
}

// monthlyReportSQL ranks sites per month by article count; %s is the dialect's UTC month expression
const monthlyReportSQL = `
SELECT month, total, news_site AS top_site
FROM (
	SELECT month,
	       news_site,
	       CAST(SUM(COUNT(*)) OVER (PARTITION BY month) AS BIGINT) AS total,
	       ROW_NUMBER() OVER (PARTITION BY month ORDER BY COUNT(*) DESC) AS rn
	FROM (SELECT %s AS month, news_site FROM articles) AS monthly
	GROUP BY month, news_site
) AS ranked
WHERE rn = 1
ORDER BY month DESC`

// MonthlyReport aggregates all stored articles by UTC calendar month in one statement.
// Among equally frequent sites the database's row order decides the top site.
func (r *GormArticleRepository) MonthlyReport(ctx context.Context) ([]domain.MonthlyReport, error) {
	var rows []domain.MonthlyReport
	query := fmt.Sprintf(monthlyReportSQL, r.monthExpr())
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to build monthly report: %w", err)
	}

	for i := range rows {
		if rows[i].TopSite == "" {
			rows[i].TopSite = domain.UnknownSite
		}
	}
	return rows, nil
}

func (r *GormArticleRepository) monthExpr() string {
	switch r.db.Dialector.Name() {
	case "sqlite":
		// timestamps are stored as UTC text, "YYYY-MM-DD HH:MM:SS..."
		return "substr(published_at, 1, 7)"
	default:
		return "to_char(published_at AT TIME ZONE 'UTC', 'YYYY-MM')"
	}
}

// AutoMigrate runs database migrations
func (r *GormArticleRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Article{}, &domain.Favorite{})
}
