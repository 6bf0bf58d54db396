package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tinymillion/backend/internal/domain/identity"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/infrastructure/auth"
	"github.com/tinymillion/backend/internal/infrastructure/config"
	"github.com/tinymillion/backend/tests/testutil"
)

const testJWTSecret = "test-secret-key-for-jwt-testing-purposes"

type authFixture struct {
	service   *AuthService
	users     *testutil.MockUserRepository
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
	events    *testutil.RecordingPublisher
}

func newAuthFixture(admin config.AdminConfig) *authFixture {
	f := &authFixture{
		users: new(testutil.MockUserRepository),
		jwt: auth.NewJWTService(config.JWTConfig{
			Secret:          testJWTSecret,
			UserExpiration:  7 * 24 * time.Hour,
			AdminExpiration: 12 * time.Hour,
		}),
		blacklist: auth.NewInMemoryTokenBlacklist(),
		events:    testutil.NewRecordingPublisher(),
	}
	f.service = NewAuthService(AuthServiceConfig{
		Users:     f.users,
		Tokens:    f.jwt,
		Blacklist: f.blacklist,
		Admin:     admin,
		Events:    f.events,
	})
	return f
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates customer and issues token", func(t *testing.T) {
		f := newAuthFixture(config.AdminConfig{})
		email := gofakeit.Email()
		f.users.On("ExistsByEmail", ctx, email).Return(false, nil)
		f.users.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := f.service.Register(ctx, RegisterInput{
			Name:     gofakeit.Name(),
			Email:    email,
			Password: "supersecret",
		})
		require.NoError(t, err)
		assert.Equal(t, auth.RoleCustomer, result.Role)
		assert.NotEqual(t, uuid.Nil, result.UserID)

		claims, err := f.jwt.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, result.UserID.String(), claims.UserID)
		assert.Equal(t, auth.RoleCustomer, claims.Role)
		assert.False(t, claims.IsAdmin())

		assert.Equal(t, []string{identity.EventTypeUserRegistered}, f.events.Types())
		f.users.AssertExpectations(t)
	})

	t.Run("rejects existing email", func(t *testing.T) {
		f := newAuthFixture(config.AdminConfig{})
		f.users.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil)

		_, err := f.service.Register(ctx, RegisterInput{Name: "A", Email: "taken@example.com", Password: "supersecret"})
		testutil.AssertDomainError(t, err, shared.CodeAlreadyExists, "User already exists")
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects short password", func(t *testing.T) {
		f := newAuthFixture(config.AdminConfig{})
		f.users.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil)

		_, err := f.service.Register(ctx, RegisterInput{Name: "A", Email: "new@example.com", Password: "short"})
		testutil.AssertDomainError(t, err, shared.CodeInvalidInput, "Password must be at least 8 characters")
	})

	t.Run("maps duplicate insert to already exists", func(t *testing.T) {
		f := newAuthFixture(config.AdminConfig{})
		f.users.On("ExistsByEmail", ctx, "race@example.com").Return(false, nil)
		f.users.On("Create", ctx, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := f.service.Register(ctx, RegisterInput{Name: "A", Email: "race@example.com", Password: "supersecret"})
		testutil.AssertDomainError(t, err, shared.CodeAlreadyExists, "User already exists")
		assert.Empty(t, f.events.Types())
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user, err := identity.NewCustomer("Asha", "asha@example.com", "supersecret")
	require.NoError(t, err)

	t.Run("success records last login", func(t *testing.T) {
		f := newAuthFixture(config.AdminConfig{})
		f.users.On("FindByEmail", ctx, "asha@example.com").Return(user, nil)
		f.users.On("TouchLastLogin", ctx, user.ID).Return(nil)

		result, err := f.service.Login(ctx, LoginInput{Email: "asha@example.com", Password: "supersecret"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.UserID)
		assert.NotEmpty(t, result.Token)
		f.users.AssertExpectations(t)
	})

	t.Run("last login failure does not block", func(t *testing.T) {
		f := newAuthFixture(config.AdminConfig{})
		f.users.On("FindByEmail", ctx, "asha@example.com").Return(user, nil)
		f.users.On("TouchLastLogin", ctx, user.ID).Return(errors.New("db down"))

		_, err := f.service.Login(ctx, LoginInput{Email: "asha@example.com", Password: "supersecret"})
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture(config.AdminConfig{})
		f.users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := f.service.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "whatever1"})
		testutil.AssertDomainError(t, err, shared.CodeNotFound, "User doesn't exist")
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(config.AdminConfig{})
		f.users.On("FindByEmail", ctx, "asha@example.com").Return(user, nil)

		_, err := f.service.Login(ctx, LoginInput{Email: "asha@example.com", Password: "wrongpass"})
		testutil.AssertDomainError(t, err, shared.CodeInvalidCredentials, "Invalid credentials")
		f.users.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything)
	})
}

func TestAuthService_AdminLogin(t *testing.T) {
	ctx := context.Background()
	admin := config.AdminConfig{Email: "admin@tinymillion.com", Password: "letmein-please"}

	t.Run("success", func(t *testing.T) {
		f := newAuthFixture(admin)
		result, err := f.service.AdminLogin(ctx, LoginInput{Email: " admin@tinymillion.com ", Password: "letmein-please"})
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, result.Role)

		claims, err := f.jwt.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.True(t, claims.IsAdmin())
		assert.Equal(t, "admin@tinymillion.com", claims.Email)
		assert.Equal(t, auth.TokenTypeAdmin, claims.Type)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(admin)
		_, err := f.service.AdminLogin(ctx, LoginInput{Email: admin.Email, Password: "nope"})
		testutil.AssertDomainError(t, err, shared.CodeInvalidCredentials, "Invalid credentials")
	})

	t.Run("not configured", func(t *testing.T) {
		f := newAuthFixture(config.AdminConfig{})
		_, err := f.service.AdminLogin(ctx, LoginInput{Email: admin.Email, Password: admin.Password})
		testutil.AssertDomainError(t, err, shared.CodeMisconfigured, "Admin credentials not configured")
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(config.AdminConfig{})

	require.NoError(t, f.service.Logout(ctx, LogoutInput{TokenJTI: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}))
	listed, err := f.blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, listed)

	require.NoError(t, f.service.Logout(ctx, LogoutInput{TokenJTI: "jti-2", ExpiresAt: time.Now().Add(-time.Minute)}))
	listed, err = f.blacklist.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, listed)

	assert.NoError(t, f.service.Logout(ctx, LogoutInput{}))
}
