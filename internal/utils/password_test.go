package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("escape-room!1", bcrypt.MinCost)
	assert.NoError(t, err)
	assert.NotEqual(t, "escape-room!1", hash)

	assert.True(t, VerifyPassword(hash, "escape-room!1"))
	assert.False(t, VerifyPassword(hash, "escape-room!2"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := HashPassword("same-password", bcrypt.MinCost)
	assert.NoError(t, err)
	h2, err := HashPassword("same-password", bcrypt.MinCost)
	assert.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
