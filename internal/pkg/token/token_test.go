package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed, err := Issue(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "42", claims.Subject)
}

func TestIssueWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Issue(1, "bob")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Verify("not-a-token")
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	signed, err := Issue(7, "carol")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = Verify(signed)
	assert.Error(t, err)
}
