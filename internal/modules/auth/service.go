package auth

import (
	"context"
	"errors"
	"time"

	"taskhub/internal/domain"
	"taskhub/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service contains all business logic for authentication.
type Service struct {
	users  UserRepositoryInterface
	ledger RefreshTokenRepositoryInterface
	tokens TokenIssuer
}

type LoginResult struct {
	User             *domain.User
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

func NewService(users UserRepositoryInterface, ledger RefreshTokenRepositoryInterface, tokens TokenIssuer) *Service {
	return &Service{
		users:  users,
		ledger: ledger,
		tokens: tokens,
	}
}

// Register creates a user with a bcrypt-hashed password. The existence checks
// are an early exit; the unique constraints at the storage layer are the
// source of truth, so a late duplicate-key error maps to the same outcome.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Gender:       domain.Gender(req.Gender),
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials, mints an access/refresh token pair and replaces
// the user's ledger row in one transactional step.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.tokens.RefreshTTL())
	if err := s.ledger.Replace(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{
		User:             user,
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the ledger row for the presented refresh token. Deleting a
// token that no longer exists is not an error.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.ledger.DeleteByToken(ctx, refreshToken)
}

// Refresh exchanges a valid refresh token for a new access token. The ledger
// is consulted first (lookup, then expiry with lazy cleanup), then the token's
// own signature and expiry are verified independently. The refresh token and
// its ledger row are left unchanged; there is no rotation.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	row, err := s.ledger.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	if row.IsExpired(time.Now()) {
		// Lazy cleanup: the row is gone either way, surface the expiry.
		if delErr := s.ledger.DeleteByToken(ctx, refreshToken); delErr != nil {
			return "", delErr
		}
		return "", ErrRefreshTokenExpired
	}

	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	return s.tokens.GenerateAccessToken(claims.UserID, claims.Username)
}
