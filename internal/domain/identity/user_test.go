package identity

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinymillion/backend/internal/domain/shared"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with normalized email", func(t *testing.T) {
		user, err := NewCustomer("  Asha  ", "  Asha@Example.COM ", "password123")

		require.NoError(t, err)
		assert.Equal(t, "Asha", user.Name)
		assert.Equal(t, "asha@example.com", user.Email)
		assert.Equal(t, RoleCustomer, user.Role)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.Empty(t, user.CartData)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*UserRegisteredEvent)
		assert.True(t, ok)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewCustomer("x", "not-an-email", "password123")
		require.Error(t, err)
		assert.Equal(t, "Please enter a valid email", err.Error())
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewCustomer("x", gofakeit.Email(), "short")
		require.Error(t, err)
		assert.Equal(t, "Password must be at least 8 characters", err.Error())
	})
}

func TestNewSubAdmin(t *testing.T) {
	storeID := uuid.New()

	user, err := NewSubAdmin("Store Owner", "Owner@Shop.in", "pw", storeID)
	require.NoError(t, err)
	assert.Equal(t, RoleSubAdmin, user.Role)
	assert.Equal(t, "owner@shop.in", user.Email)
	require.NotNil(t, user.MiniStoreID)
	assert.Equal(t, storeID, *user.MiniStoreID)
	assert.True(t, user.HasStore())
	assert.True(t, user.IsSubAdmin())

	_, err = NewSubAdmin("x", "", "pw", storeID)
	assert.Error(t, err)
}

func TestUser_VerifyPassword(t *testing.T) {
	user, err := NewCustomer("n", "a@b.co", "password123")
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("password123"))
	assert.False(t, user.VerifyPassword("password124"))
}

func TestUser_LastSeen(t *testing.T) {
	user, err := NewCustomer("n", "a@b.co", "password123")
	require.NoError(t, err)

	assert.Equal(t, user.UpdatedAt, user.LastSeen())

	user.RecordLogin()
	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, *user.LastLoginAt, user.LastSeen())
}

func TestUser_CartNeverNil(t *testing.T) {
	user := &User{}
	assert.NotNil(t, user.Cart())
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleSubAdmin.IsValid())
	assert.True(t, RoleCustomer.IsValid())
	assert.False(t, Role("owner").IsValid())
}
