package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	u, err := CreateUser("alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestCreateUserValidation(t *testing.T) {
	_, err := CreateUser("al", "alice@example.com", "secret123")
	assert.Error(t, err, "username below minimum length")

	_, err = CreateUser("alice", "not-an-email", "secret123")
	assert.Error(t, err, "invalid email")
}

func TestSetPasswordReplacesHash(t *testing.T) {
	u, err := CreateUser("alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	old := u.PasswordHash
	require.NoError(t, u.SetPassword("newsecret"))

	assert.NotEqual(t, old, u.PasswordHash)
	assert.True(t, u.CheckPassword("newsecret"))
	assert.False(t, u.CheckPassword("secret123"))
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("pw123456")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("pw123456", hash))
	assert.False(t, CheckPasswordHash("pw1234567", hash))
	assert.False(t, CheckPasswordHash("pw123456", "not-a-hash"))
}
