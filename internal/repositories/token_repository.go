package repositories

import (
	"context"
	"time"

	"roleplay/api/internal/models"

	"gorm.io/gorm"
)

type TokenRepository struct {
	DB *gorm.DB
}

func (r *TokenRepository) Create(ctx context.Context, token *models.LinkToken) error {
	return translate(r.DB.WithContext(ctx).Create(token).Error, ErrTokenNotFound)
}

func (r *TokenRepository) GetByToken(ctx context.Context, tokenStr string) (*models.LinkToken, error) {
	var t models.LinkToken
	if err := r.DB.WithContext(ctx).Where("token = ?", tokenStr).First(&t).Error; err != nil {
		return nil, translate(err, ErrTokenNotFound)
	}
	return &t, nil
}

// Consume deletes the token and stores passwordHash for its owner in one
// transaction. A token already deleted by a concurrent consumer yields
// ErrTokenNotFound and leaves the password untouched.
func (r *TokenRepository) Consume(ctx context.Context, token *models.LinkToken, passwordHash string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted := tx.Where("id = ?", token.ID).Delete(&models.LinkToken{})
		if deleted.Error != nil {
			return deleted.Error
		}
		if deleted.RowsAffected == 0 {
			return ErrTokenNotFound
		}

		updated := tx.Model(&models.User{}).Where("id = ?", token.UserID).Update("password", passwordHash)
		if updated.Error != nil {
			return updated.Error
		}
		if updated.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

// DeleteCreatedBefore removes tokens issued before the cutoff.
func (r *TokenRepository) DeleteCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	tx := r.DB.WithContext(ctx).Where("created_at < ?", before).Delete(&models.LinkToken{})
	return tx.RowsAffected, tx.Error
}
