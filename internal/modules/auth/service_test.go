package auth

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/domain"
	"taskhub/internal/pkg/jwt"
	"taskhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mock user repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// Mock refresh token ledger
type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) Replace(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, token, expiresAt)
	return args.Error(0)
}

func (m *mockLedger) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *mockLedger) DeleteByToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// Mock token issuer
type mockIssuer struct {
	mock.Mock
}

func (m *mockIssuer) GenerateAccessToken(userID int64, username string) (string, error) {
	args := m.Called(userID, username)
	return args.String(0), args.Error(1)
}

func (m *mockIssuer) GenerateRefreshToken(userID int64, username string) (string, error) {
	args := m.Called(userID, username)
	return args.String(0), args.Error(1)
}

func (m *mockIssuer) ParseRefreshToken(token string) (*jwt.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Claims), args.Error(1)
}

func (m *mockIssuer) RefreshTTL() time.Duration {
	return 7 * 24 * time.Hour
}

func newService(users *mockUserRepo, ledger *mockLedger, issuer *mockIssuer) *Service {
	return NewService(users, ledger, issuer)
}

func TestRegister_Success(t *testing.T) {
	users := new(mockUserRepo)
	ledger := new(mockLedger)
	issuer := new(mockIssuer)

	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	users.On("ExistsByEmail", mock.Anything, "alice@x.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		// Password must be hashed before it reaches the store.
		return u.Username == "alice" && u.PasswordHash != "secret123" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
	})).Return(nil)

	service := newService(users, ledger, issuer)

	user, err := service.Register(context.Background(), RegisterRequest{
		FirstName: "Alice",
		LastName:  "Smith",
		Username:  "alice",
		Email:     "alice@x.com",
		Password:  "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)
	users.AssertExpectations(t)
}

func TestRegister_UsernameTaken(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)

	service := newService(users, new(mockLedger), new(mockIssuer))

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_EmailTaken(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	users.On("ExistsByEmail", mock.Anything, "alice@x.com").Return(true, nil)

	service := newService(users, new(mockLedger), new(mockIssuer))

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_LateConstraintViolation(t *testing.T) {
	// The pre-checks race with concurrent registrations; a duplicate-key
	// error at insert must map to the same outcome.
	users := new(mockUserRepo)
	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	users.On("ExistsByEmail", mock.Anything, "alice@x.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateUsername)

	service := newService(users, new(mockLedger), new(mockIssuer))

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin_Success(t *testing.T) {
	users := new(mockUserRepo)
	ledger := new(mockLedger)
	issuer := new(mockIssuer)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	existing := &domain.User{ID: 10, Username: "alice", PasswordHash: string(hashed)}

	users.On("GetByUsername", mock.Anything, "alice").Return(existing, nil)
	issuer.On("GenerateAccessToken", int64(10), "alice").Return("access-token", nil)
	issuer.On("GenerateRefreshToken", int64(10), "alice").Return("refresh-token", nil)
	ledger.On("Replace", mock.Anything, int64(10), "refresh-token", mock.MatchedBy(func(exp time.Time) bool {
		return time.Until(exp) > 6*24*time.Hour
	})).Return(nil)

	service := newService(users, ledger, issuer)

	result, err := service.Login(context.Background(), LoginRequest{
		Username: "alice", Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "access-token", result.AccessToken)
	assert.Equal(t, "refresh-token", result.RefreshToken)
	assert.Empty(t, result.User.PasswordHash)
	ledger.AssertExpectations(t)
}

func TestLogin_UserNotFound(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	service := newService(users, new(mockLedger), new(mockIssuer))

	_, err := service.Login(context.Background(), LoginRequest{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin_IncorrectPassword(t *testing.T) {
	users := new(mockUserRepo)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	users.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID: 1, Username: "alice", PasswordHash: string(hashed),
	}, nil)

	service := newService(users, new(mockLedger), new(mockIssuer))

	_, err := service.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestLogout_Idempotent(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("DeleteByToken", mock.Anything, "some-token").Return(nil)

	service := newService(new(mockUserRepo), ledger, new(mockIssuer))

	assert.NoError(t, service.Logout(context.Background(), "some-token"))
	ledger.AssertExpectations(t)
}

func TestRefresh_Success(t *testing.T) {
	ledger := new(mockLedger)
	issuer := new(mockIssuer)

	ledger.On("GetByToken", mock.Anything, "refresh-token").Return(&domain.RefreshToken{
		UserID:    10,
		Token:     "refresh-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	issuer.On("ParseRefreshToken", "refresh-token").Return(&jwt.Claims{
		UserID: 10, Username: "alice",
	}, nil)
	issuer.On("GenerateAccessToken", int64(10), "alice").Return("new-access-token", nil)

	service := newService(new(mockUserRepo), ledger, issuer)

	token, err := service.Refresh(context.Background(), "refresh-token")
	require.NoError(t, err)
	assert.Equal(t, "new-access-token", token)
}

func TestRefresh_NoLedgerRow(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("GetByToken", mock.Anything, "unknown").Return(nil, gorm.ErrRecordNotFound)

	service := newService(new(mockUserRepo), ledger, new(mockIssuer))

	_, err := service.Refresh(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_ExpiredRowDeletedLazily(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("GetByToken", mock.Anything, "stale").Return(&domain.RefreshToken{
		UserID:    10,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil)
	ledger.On("DeleteByToken", mock.Anything, "stale").Return(nil)

	service := newService(new(mockUserRepo), ledger, new(mockIssuer))

	_, err := service.Refresh(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrRefreshTokenExpired)
	ledger.AssertExpectations(t)
}

func TestRefresh_BadSignature(t *testing.T) {
	ledger := new(mockLedger)
	issuer := new(mockIssuer)

	ledger.On("GetByToken", mock.Anything, "forged").Return(&domain.RefreshToken{
		UserID:    10,
		Token:     "forged",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	issuer.On("ParseRefreshToken", "forged").Return(nil, jwt.ErrTokenInvalid)

	service := newService(new(mockUserRepo), ledger, issuer)

	_, err := service.Refresh(context.Background(), "forged")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
