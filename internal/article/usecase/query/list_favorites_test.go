package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tair/spaceflight-news/internal/article/domain"
)

func TestListFavorites_RequiresUser(t *testing.T) {
	repo := new(MockFavoriteRepository)

	_, err := NewListFavoritesHandler(repo).Handle(context.Background(), ListFavoritesQuery{})
	assert.ErrorIs(t, err, domain.ErrUserRequired)
	repo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListFavorites_Paging(t *testing.T) {
	tests := []struct {
		name       string
		query      ListFavoritesQuery
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", query: ListFavoritesQuery{UserID: 1}, wantLimit: DefaultFavoritesLimit},
		{name: "clamped", query: ListFavoritesQuery{UserID: 1, Limit: 500, Offset: 40}, wantLimit: MaxFavoritesLimit, wantOffset: 40},
		{name: "negative offset", query: ListFavoritesQuery{UserID: 1, Limit: 5, Offset: -3}, wantLimit: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockFavoriteRepository)
			repo.On("ListByUser", mock.Anything, uint(1), tt.wantLimit, tt.wantOffset).Return(nil, int64(0), nil)

			page, err := NewListFavoritesHandler(repo).Handle(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Zero(t, page.Count)
			assert.NotNil(t, page.Results)
			repo.AssertExpectations(t)
		})
	}
}

func TestListFavorites_ReturnsPage(t *testing.T) {
	repo := new(MockFavoriteRepository)
	favorites := []domain.Favorite{{ID: 2, UserID: 7}, {ID: 1, UserID: 7}}
	repo.On("ListByUser", mock.Anything, uint(7), 20, 0).Return(favorites, int64(2), nil)

	page, err := NewListFavoritesHandler(repo).Handle(context.Background(), ListFavoritesQuery{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Count)
	assert.Equal(t, favorites, page.Results)
}
