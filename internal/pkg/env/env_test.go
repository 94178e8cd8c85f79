package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvFallsBackToOSThenDefault(t *testing.T) {
	t.Setenv("CONDUIT_TEST_KEY", "from-os")

	assert.Equal(t, "from-os", GetEnv("CONDUIT_TEST_KEY", "def"))
	assert.Equal(t, "def", GetEnv("CONDUIT_TEST_KEY_UNSET", "def"))
}

func TestIsDev(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	assert.True(t, IsDev())

	t.Setenv("APP_ENV", "prod")
	assert.False(t, IsDev())
}
