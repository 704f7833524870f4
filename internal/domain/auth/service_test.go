package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
)

type mockUserRepo struct {
	UserRepository
	users map[string]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *User) error {
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return u, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	for _, u := range m.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

func (m *mockUserRepo) Update(ctx context.Context, user *User) error {
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepo) LoadRoles(ctx context.Context, userID id.ID) ([]Role, error) {
	return nil, nil
}

func (m *mockUserRepo) Exists(ctx context.Context, email string) (bool, error) {
	_, ok := m.users[email]
	return ok, nil
}

type mockRoleRepo struct {
	RoleRepository
}

func (m *mockRoleRepo) GetByCode(ctx context.Context, code string) (*Role, error) {
	return nil, apperror.NewNotFound("role", code)
}

type mockTokenRepo struct {
	TokenRepository
	tokens  map[string]*RefreshToken
	revoked map[id.ID]string
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{
		tokens:  make(map[string]*RefreshToken),
		revoked: make(map[id.ID]string),
	}
}

func (m *mockTokenRepo) SaveRefreshToken(ctx context.Context, token *RefreshToken) error {
	m.tokens[token.TokenHash] = token
	return nil
}

func (m *mockTokenRepo) GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	t, ok := m.tokens[tokenHash]
	if !ok {
		return nil, apperror.NewNotFound("token", tokenHash)
	}
	return t, nil
}

func (m *mockTokenRepo) RevokeRefreshToken(ctx context.Context, tokenID id.ID, reason string) error {
	m.revoked[tokenID] = reason
	for _, t := range m.tokens {
		if t.ID == tokenID {
			now := time.Now()
			t.RevokedAt = &now
			t.RevokedReason = reason
		}
	}
	return nil
}

func (m *mockTokenRepo) RevokeAllUserTokens(ctx context.Context, userID id.ID, reason string) error {
	for _, t := range m.tokens {
		if t.UserID == userID {
			now := time.Now()
			t.RevokedAt = &now
			t.RevokedReason = reason
		}
	}
	return nil
}

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(userRepo *mockUserRepo, tokenRepo *mockTokenRepo) *Service {
	return NewService(
		userRepo,
		&mockRoleRepo{},
		tokenRepo,
		&mockTxManager{},
		NewJWTService(DefaultJWTConfig("test-secret")),
		DefaultServiceConfig(),
	)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	userRepo := newMockUserRepo()
	tokenRepo := newMockTokenRepo()
	svc := newTestService(userRepo, tokenRepo)

	user, err := svc.Register(ctx, RegisterRequest{
		Email:     "asha@example.com",
		Password:  "s3cret-pass",
		FirstName: "Asha",
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	tokens, loggedIn, err := svc.Login(ctx, Credentials{
		Email:    "asha@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.NotNil(t, loggedIn.LastLoginAt)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := newTestService(newMockUserRepo(), newMockTokenRepo())

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "x@example.com",
		Password: "short",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMockUserRepo(), newMockTokenRepo())

	_, err := svc.Register(ctx, RegisterRequest{Email: "dup@example.com", Password: "long-enough"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Email: "dup@example.com", Password: "long-enough"})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := newMockUserRepo()
	svc := newTestService(userRepo, newMockTokenRepo())

	_, err := svc.Register(ctx, RegisterRequest{Email: "y@example.com", Password: "right-password"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, Credentials{Email: "y@example.com", Password: "wrong-password"})
	require.Error(t, err)
	assert.Equal(t, 1, userRepo.users["y@example.com"].FailedLoginAttempts)
}

func TestLoginLocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	userRepo := newMockUserRepo()
	svc := newTestService(userRepo, newMockTokenRepo())

	_, err := svc.Register(ctx, RegisterRequest{Email: "z@example.com", Password: "right-password"})
	require.NoError(t, err)

	for i := 0; i < DefaultServiceConfig().MaxLoginAttempts; i++ {
		_, _, _ = svc.Login(ctx, Credentials{Email: "z@example.com", Password: "wrong"})
	}

	assert.True(t, userRepo.users["z@example.com"].IsLocked())

	// Even the right password is rejected while locked.
	_, _, err = svc.Login(ctx, Credentials{Email: "z@example.com", Password: "right-password"})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestRefreshTokenRotation(t *testing.T) {
	ctx := context.Background()
	userRepo := newMockUserRepo()
	tokenRepo := newMockTokenRepo()
	svc := newTestService(userRepo, tokenRepo)

	_, err := svc.Register(ctx, RegisterRequest{Email: "r@example.com", Password: "long-enough"})
	require.NoError(t, err)
	tokens, _, err := svc.Login(ctx, Credentials{Email: "r@example.com", Password: "long-enough"})
	require.NoError(t, err)

	fresh, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, fresh.RefreshToken)

	// Old token was revoked by rotation.
	_, err = svc.RefreshToken(ctx, tokens.RefreshToken)
	require.Error(t, err)
}

func TestJWTRoundTrip(t *testing.T) {
	jwtSvc := NewJWTService(DefaultJWTConfig("round-trip-secret"))

	tokenString, expiresAt, err := jwtSvc.GenerateAccessToken(
		"user-1", "a@example.com", "Asha K", []string{"accountant"}, false)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	uc, err := jwtSvc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uc.UserID)
	assert.Equal(t, "a@example.com", uc.Email)
	assert.Equal(t, []string{"accountant"}, uc.Roles)
	assert.False(t, uc.IsAdmin)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	tokenString, _, err := issuer.GenerateAccessToken("u", "e@example.com", "", nil, false)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(tokenString)
	require.Error(t, err)
}

func TestPasswordHashIsBcrypt(t *testing.T) {
	ctx := context.Background()
	userRepo := newMockUserRepo()
	svc := newTestService(userRepo, newMockTokenRepo())

	_, err := svc.Register(ctx, RegisterRequest{Email: "b@example.com", Password: "long-enough"})
	require.NoError(t, err)

	hash := userRepo.users["b@example.com"].PasswordHash
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("long-enough")))
}
