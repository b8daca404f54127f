package domain

import (
	"context"
	"time"

	userdomain "github.com/tair/spaceflight-news/internal/user/domain"
)

// Favorite links a user to an article they marked
type Favorite struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"-" gorm:"not null;uniqueIndex:idx_favorites_user_article,priority:1;index:idx_favorites_user_created,priority:1"`
	ArticleID uint             `json:"-" gorm:"not null;uniqueIndex:idx_favorites_user_article,priority:2"`
	CreatedAt time.Time        `json:"created_at" gorm:"index:idx_favorites_user_created,priority:2"`
	User      *userdomain.User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Article   *Article         `json:"article" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// FavoritePage is one page of a user's favorites
type FavoritePage struct {
	Count   int64      `json:"count"`
	Results []Favorite `json:"results"`
}

// FavoriteRepository defines the contract for favorite data access.
// Every read is scoped to a single user.
type FavoriteRepository interface {
	// Add stores the association if absent and returns it; created is false when it already existed
	Add(ctx context.Context, userID, articleID uint) (fav *Favorite, created bool, err error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]Favorite, int64, error)
}
