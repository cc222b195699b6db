package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/budget_approval_app/internal/utils"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := utils.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, utils.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, utils.VerifyPassword("wrong password", hash))
	assert.False(t, utils.VerifyPassword("correct horse battery staple", "not-a-bcrypt-hash"))
}
