package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinymillion/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-testing-purposes",
		UserExpiration:  7 * 24 * time.Hour,
		AdminExpiration: 12 * time.Hour,
		Issuer:          "test-issuer",
	})
}

func TestIssueUserToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	issued, err := svc.IssueUserToken(userID, RoleCustomer)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), issued.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, RoleCustomer, claims.Role)
	assert.Equal(t, TokenTypeUser, claims.Type)
	assert.False(t, claims.IsAdmin())
	assert.NotEmpty(t, claims.ID, "jti must be set for revocation")

	parsed, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestIssueSubAdminToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	issued, err := svc.IssueSubAdminToken(userID, "owner@store.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleSubAdmin, claims.Role)
	assert.Equal(t, "owner@store.com", claims.Email)
	assert.False(t, claims.IsAdmin())
}

func TestIssueAdminToken(t *testing.T) {
	svc := newTestJWTService()

	issued, err := svc.IssueAdminToken("admin@tinymillion.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), issued.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
	assert.True(t, claims.Admin)
	assert.Equal(t, TokenTypeAdmin, claims.Type)

	_, err = claims.UserUUID()
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestValidateToken_Errors(t *testing.T) {
	svc := newTestJWTService()

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("invalid.token.string")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := newTestJWTService()
		past.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
		issued, err := past.IssueUserToken(uuid.New(), RoleCustomer)
		require.NoError(t, err)

		_, err = svc.ValidateToken(issued.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret", UserExpiration: time.Hour})
		issued, err := other.IssueUserToken(uuid.New(), RoleCustomer)
		require.NoError(t, err)

		_, err = svc.ValidateToken(issued.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.NewString()})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestValidateToken_LegacyPayload(t *testing.T) {
	svc := newTestJWTService()

	// Tokens that only carry {id} remain valid.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "0b8a4d2e-6c1f-4c52-9a2b-9e4a3b1f7c11",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret-key-for-jwt-testing-purposes"))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "0b8a4d2e-6c1f-4c52-9a2b-9e4a3b1f7c11", claims.UserID)
	assert.Empty(t, claims.Role)
}

func TestClaims_ExpiresAtTime(t *testing.T) {
	c := &Claims{}
	assert.True(t, c.ExpiresAtTime().IsZero())

	at := time.Now().Add(time.Hour).Truncate(time.Second)
	c.ExpiresAt = jwt.NewNumericDate(at)
	assert.True(t, at.Equal(c.ExpiresAtTime()))
}
