package query

import (
	"context"
	"fmt"

	"github.com/tair/spaceflight-news/internal/article/domain"
)

const (
	DefaultFavoritesLimit = 20
	MaxFavoritesLimit     = 100
)

// ListFavoritesQuery represents the query to list one user's favorites
type ListFavoritesQuery struct {
	UserID uint
	Limit  int
	Offset int
}

// ListFavoritesHandler handles list favorites query
type ListFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(repo domain.FavoriteRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{repo: repo}
}

// Handle executes the list favorites query
func (h *ListFavoritesHandler) Handle(ctx context.Context, query ListFavoritesQuery) (*domain.FavoritePage, error) {
	if query.UserID == 0 {
		return nil, domain.ErrUserRequired
	}

	if query.Limit <= 0 {
		query.Limit = DefaultFavoritesLimit
	}
	if query.Limit > MaxFavoritesLimit {
		query.Limit = MaxFavoritesLimit
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	favorites, total, err := h.repo.ListByUser(ctx, query.UserID, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if favorites == nil {
		favorites = []domain.Favorite{}
	}

	return &domain.FavoritePage{
		Count:   total,
		Results: favorites,
	}, nil
}
