package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := NotFound("Product not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, "Product not found", err.Error())
}

func TestDomainError_Wrapped(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("save order: %w", WrapDomainError(CodeInvalidState, "cannot save", cause))

	de, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidState, de.Code)
	assert.ErrorIs(t, err, cause)
}

func TestAsDomainError_PlainError(t *testing.T) {
	_, ok := AsDomainError(errors.New("boom"))
	assert.False(t, ok)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestPageBounds(t *testing.T) {
	limit, offset := PageBounds(0, 0, 20)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	limit, offset = PageBounds(3, 10, 20)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)
}
