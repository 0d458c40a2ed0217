package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("1234567"))
	assert.NoError(t, ValidatePassword("12345678"))
	assert.NoError(t, ValidatePassword("correct horse battery staple"))
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("open sesame", 4)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "open sesame"))
	assert.False(t, VerifyPassword(hash, "open sesame?"))
	assert.False(t, VerifyPassword("not-a-hash", "open sesame"))
}

// An out-of-range cost falls back to the bcrypt default instead of
// breaking account creation.
func TestHashPasswordCostFallback(t *testing.T) {
	hash, err := HashPassword("open sesame", -1)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "open sesame"))
}
