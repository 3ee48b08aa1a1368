package repository

import (
	"context"
	"time"

	"taskhub/internal/domain"

	"gorm.io/gorm"
)

// RefreshTokenRepository is the ledger of currently valid refresh tokens.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Replace atomically supersedes any existing token for the user. The
// delete-then-insert runs inside one transaction and user_id carries a unique
// index, so two concurrent logins can never leave two live rows.
func (r *RefreshTokenRepository) Replace(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&domain.RefreshToken{
			Token:     token,
			UserID:    userID,
			ExpiresAt: expiresAt,
		}).Error
	})
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteByToken revokes a single token. Deleting a nonexistent token is not
// an error.
func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&domain.RefreshToken{}).Error
}

// DeleteByUser revokes every token for a principal, e.g. after a password
// change.
func (r *RefreshTokenRepository) DeleteByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.RefreshToken{}).Error
}

// DeleteExpired sweeps rows past their expiry. Lookups revalidate expiry
// anyway; this just keeps the table small.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
