package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/spaceflight-news/internal/article/domain"
	userdomain "github.com/tair/spaceflight-news/internal/user/domain"
)

// GormFavoriteRepository implements FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Add stores the (user, article) pair unless it already exists. A user deleted
// after their token was issued yields domain.ErrUserNotFound.
func (r *GormFavoriteRepository) Add(ctx context.Context, userID, articleID uint) (*domain.Favorite, bool, error) {
	var (
		fav     domain.Favorite
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userdomain.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if count == 0 {
			return domain.ErrUserNotFound
		}

		if err := tx.Model(&domain.Article{}).Where("id = ?", articleID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check article: %w", err)
		}
		if count == 0 {
			return domain.ErrArticleNotFound
		}

		candidate := domain.Favorite{UserID: userID, ArticleID: articleID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&candidate)
		if res.Error != nil {
			return fmt.Errorf("failed to create favorite: %w", res.Error)
		}
		created = res.RowsAffected == 1

		if err := tx.Preload("Article").
			Where("user_id = ? AND article_id = ?", userID, articleID).
			Take(&fav).Error; err != nil {
			return fmt.Errorf("failed to load favorite: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &fav, created, nil
}

// ListByUser returns one page of the user's favorites, newest first, with the user's total
func (r *GormFavoriteRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]domain.Favorite, int64, error) {
	ownedBy := func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Favorite{}).Scopes(ownedBy).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count favorites: %w", err)
	}

	favorites := []domain.Favorite{}
	if err := r.db.WithContext(ctx).
		Scopes(ownedBy).
		Preload("Article").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&favorites).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, total, nil
}
