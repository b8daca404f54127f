package domain

import (
	"context"
	"time"
)

// Article is a news item ingested from the external feed
type Article struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ExternalID     int64     `json:"external_id" gorm:"uniqueIndex;not null"`
	Title          string    `json:"title" gorm:"size:500;not null"`
	URL            string    `json:"url" gorm:"size:500;not null"`
	NewsSite       string    `json:"news_site" gorm:"size:200;not null;index:idx_articles_published_site,priority:2"`
	SentimentScore int       `json:"sentiment_score" gorm:"not null"`
	PublishedAt    time.Time `json:"published_at" gorm:"not null;index;index:idx_articles_published_site,priority:1"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// TableName specifies the table name
func (Article) TableName() string {
	return "articles"
}

// ArticleFilter narrows an article search; zero values are ignored
type ArticleFilter struct {
	Search    string
	NewsSite  string
	Sentiment *int
	Limit     int
	Offset    int
}

// ArticleRepository defines the contract for article data access
type ArticleRepository interface {
	// Upsert inserts or overwrites the article keyed by ExternalID and reloads the stored row into a
	Upsert(ctx context.Context, a *Article) (created bool, err error)
	FindByID(ctx context.Context, id uint) (*Article, error)
	Search(ctx context.Context, filter ArticleFilter) ([]Article, int64, error)
	MonthlyReport(ctx context.Context) ([]MonthlyReport, error)
}
