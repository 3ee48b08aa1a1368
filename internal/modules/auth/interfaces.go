package auth

import (
	"context"
	"time"

	"taskhub/internal/domain"
	"taskhub/internal/pkg/jwt"
)

// UserRepositoryInterface lists only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepositoryInterface is the ledger of live refresh tokens.
type RefreshTokenRepositoryInterface interface {
	Replace(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
}

// TokenIssuer mints and verifies signed tokens.
type TokenIssuer interface {
	GenerateAccessToken(userID int64, username string) (string, error)
	GenerateRefreshToken(userID int64, username string) (string, error)
	ParseRefreshToken(token string) (*jwt.Claims, error)
	RefreshTTL() time.Duration
}
