package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/spaceflight-news/internal/testutil"
	"github.com/tair/spaceflight-news/internal/user/domain"
	"github.com/tair/spaceflight-news/internal/user/repository"
)

func TestGetUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	existing := testutil.CreateUser(t, db, "reader", domain.RoleUser)
	handler := NewGetUserHandler(repository.NewGormUserRepository(db))

	user, err := handler.Handle(context.Background(), GetUserQuery{ID: existing.ID})
	require.NoError(t, err)
	assert.Equal(t, "reader", user.Username)

	_, err = handler.Handle(context.Background(), GetUserQuery{ID: existing.ID + 100})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = handler.Handle(context.Background(), GetUserQuery{})
	assert.Error(t, err)
}
