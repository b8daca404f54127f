// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	articledomain "github.com/tair/spaceflight-news/internal/article/domain"
	userdomain "github.com/tair/spaceflight-news/internal/user/domain"
)

// NewTestDB opens a migrated SQLite database private to the test
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&userdomain.User{}, &articledomain.Article{}, &articledomain.Favorite{}))
	return db
}

// CreateUser inserts a user with the given username
func CreateUser(t *testing.T, db *gorm.DB, username, role string) *userdomain.User {
	t.Helper()

	user := &userdomain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateArticle inserts an article directly, bypassing the synchronizer
func CreateArticle(t *testing.T, db *gorm.DB, externalID int64, title, site string, publishedAt time.Time) *articledomain.Article {
	t.Helper()

	article := &articledomain.Article{
		ExternalID:  externalID,
		Title:       title,
		URL:         "https://example.com/" + title,
		NewsSite:    site,
		PublishedAt: publishedAt.UTC(),
	}
	require.NoError(t, db.Create(article).Error)
	return article
}
