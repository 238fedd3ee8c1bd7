package util

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRandomLowerAphaNumString(t *testing.T) {
	s := RandomLowerAphaNumString(32)
	assert.Equal(t, 32, len(s))
	assert.NotEqual(t, s, RandomLowerAphaNumString(32))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("agent@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.ae"))
	assert.True(t, IsValidEmail("  padded@example.com  "))

	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("agent@"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("agent@example"))
	assert.False(t, IsValidEmail("agent example@example.com"))
}

func TestTrimAndLower(t *testing.T) {
	assert.Equal(t, "agent@example.com", TrimAndLower("  Agent@Example.COM "))
}

func TestScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetScopeByKey(c, "missing"))
	assert.Equal(t, "", GetScopeByKeyAsString(c, "missing"))
	assert.False(t, GetScopeByKeyAsBool(c, "missing"))

	SetScope(c, "agent_uuid", "uuid-1")
	SetScope(c, "is_admin", true)

	assert.Equal(t, "uuid-1", GetScopeByKeyAsString(c, "agent_uuid"))
	assert.True(t, GetScopeByKeyAsBool(c, "is_admin"))

	// Type mismatches fall back to zero values.
	assert.Equal(t, "", GetScopeByKeyAsString(c, "is_admin"))
	assert.False(t, GetScopeByKeyAsBool(c, "agent_uuid"))
}
