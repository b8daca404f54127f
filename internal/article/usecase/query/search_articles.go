package query

import (
	"context"
	"fmt"

	"github.com/tair/spaceflight-news/internal/article/domain"
)

// SearchArticlesQuery represents an admin search over stored articles
type SearchArticlesQuery struct {
	Search    string
	NewsSite  string
	Sentiment *int
	Limit     int
	Offset    int
}

// ArticleList is one page of search results
type ArticleList struct {
	Articles []domain.Article `json:"articles"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// SearchArticlesHandler handles search articles query
type SearchArticlesHandler struct {
	repo domain.ArticleRepository
}

// NewSearchArticlesHandler creates a new search articles handler
func NewSearchArticlesHandler(repo domain.ArticleRepository) *SearchArticlesHandler {
	return &SearchArticlesHandler{repo: repo}
}

// Handle executes the search articles query
func (h *SearchArticlesHandler) Handle(ctx context.Context, query SearchArticlesQuery) (*ArticleList, error) {
	if query.Sentiment != nil && *query.Sentiment != 0 && *query.Sentiment != 1 {
		return nil, fmt.Errorf("sentiment must be 0 or 1")
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}
	if query.Limit > 100 {
		query.Limit = 100
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	articles, total, err := h.repo.Search(ctx, domain.ArticleFilter{
		Search:    query.Search,
		NewsSite:  query.NewsSite,
		Sentiment: query.Sentiment,
		Limit:     query.Limit,
		Offset:    query.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search articles: %w", err)
	}

	return &ArticleList{
		Articles: articles,
		Total:    total,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}, nil
}
