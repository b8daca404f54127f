package command

import (
	"context"
	"fmt"

	"github.com/tair/spaceflight-news/internal/article/domain"
)

// FavoriteArticleCommand marks an article as a favorite of a user
type FavoriteArticleCommand struct {
	UserID    uint
	ArticleID uint
}

// FavoriteArticleHandler handles favorite article command
type FavoriteArticleHandler struct {
	repo domain.FavoriteRepository
}

// NewFavoriteArticleHandler creates a new favorite article handler
func NewFavoriteArticleHandler(repo domain.FavoriteRepository) *FavoriteArticleHandler {
	return &FavoriteArticleHandler{repo: repo}
}

// Handle executes the favorite command. Repeating it is harmless: the existing
// association is returned with created=false.
func (h *FavoriteArticleHandler) Handle(ctx context.Context, cmd FavoriteArticleCommand) (*domain.Favorite, bool, error) {
	if cmd.UserID == 0 {
		return nil, false, domain.ErrUserRequired
	}
	if cmd.ArticleID == 0 {
		return nil, false, domain.ErrArticleNotFound
	}

	fav, created, err := h.repo.Add(ctx, cmd.UserID, cmd.ArticleID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to favorite article %d: %w", cmd.ArticleID, err)
	}
	return fav, created, nil
}
