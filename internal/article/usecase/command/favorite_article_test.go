package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tair/spaceflight-news/internal/article/domain"
)

func TestFavoriteArticle(t *testing.T) {
	t.Run("passes through created flag", func(t *testing.T) {
		repo := new(MockFavoriteRepository)
		fav := &domain.Favorite{ID: 9, UserID: 1, ArticleID: 2}
		repo.On("Add", mock.Anything, uint(1), uint(2)).Return(fav, true, nil).Once()
		repo.On("Add", mock.Anything, uint(1), uint(2)).Return(fav, false, nil).Once()
		handler := NewFavoriteArticleHandler(repo)

		got, created, err := handler.Handle(context.Background(), FavoriteArticleCommand{UserID: 1, ArticleID: 2})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, fav, got)

		_, created, err = handler.Handle(context.Background(), FavoriteArticleCommand{UserID: 1, ArticleID: 2})
		require.NoError(t, err)
		assert.False(t, created)
		repo.AssertExpectations(t)
	})

	t.Run("unknown article", func(t *testing.T) {
		repo := new(MockFavoriteRepository)
		repo.On("Add", mock.Anything, uint(1), uint(99)).Return(nil, false, domain.ErrArticleNotFound)

		_, _, err := NewFavoriteArticleHandler(repo).Handle(context.Background(), FavoriteArticleCommand{UserID: 1, ArticleID: 99})
		assert.ErrorIs(t, err, domain.ErrArticleNotFound)
	})

	t.Run("requires user", func(t *testing.T) {
		repo := new(MockFavoriteRepository)

		_, _, err := NewFavoriteArticleHandler(repo).Handle(context.Background(), FavoriteArticleCommand{ArticleID: 2})
		assert.ErrorIs(t, err, domain.ErrUserRequired)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})
}
