// Package testutil holds the mocks, gin contexts and envelope assertions
// shared by the storefront tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinymillion/backend/internal/domain/shared"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Keys the auth middleware stores on the gin context
const (
	ContextKeyUserID      = "user_id"
	ContextKeyRole        = "role"
	ContextKeyMiniStoreID = "mini_store_id"
)

// TestContext is a gin context backed by a response recorder
type TestContext struct {
	Context  *gin.Context
	Recorder *httptest.ResponseRecorder
	Engine   *gin.Engine
}

func NewTestContext(t *testing.T) *TestContext {
	t.Helper()
	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return &TestContext{Context: c, Recorder: w, Engine: engine}
}

// SetUserID authenticates the request as a customer
func (tc *TestContext) SetUserID(id uuid.UUID) {
	tc.Context.Set(ContextKeyUserID, id)
}

// SetSubAdmin authenticates the request as the sub-admin of storeID
func (tc *TestContext) SetSubAdmin(userID, storeID uuid.UUID) {
	tc.SetUserID(userID)
	tc.Context.Set(ContextKeyRole, "subadmin")
	tc.Context.Set(ContextKeyMiniStoreID, storeID)
}

func (tc *TestContext) ResponseBody() []byte { return tc.Recorder.Body.Bytes() }
func (tc *TestContext) ResponseCode() int    { return tc.Recorder.Code }

// TestUserID is a stable id derived from a fixed seed
func TestUserID() uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("tinymillion/test-user"))
}

// AssertDomainError asserts err is a DomainError with the code and, when
// message is non-empty, the message.
func AssertDomainError(t *testing.T, err error, code, message string) {
	t.Helper()

	require.Error(t, err)
	de, ok := shared.AsDomainError(err)
	require.True(t, ok, "expected a DomainError, got %T: %v", err, err)
	assert.Equal(t, code, de.Code)
	if message != "" {
		assert.Equal(t, message, de.Message)
	}
}
