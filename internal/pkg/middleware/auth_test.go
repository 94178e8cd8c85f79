package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduitapp/conduit/internal/pkg/token"
	"github.com/conduitapp/conduit/internal/pkg/usercontext"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", RequireAuth(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": usercontext.GetUserID(c)})
	})
	app.Get("/open", OptionalAuth(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   usercontext.GetUserID(c),
			"logged_in": usercontext.IsLoggedIn(c),
		})
	})
	return app
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthRejectsInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	signed, err := token.Issue(42, "alice")
	require.NoError(t, err)

	for _, scheme := range []string{"Token ", "Bearer "} {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", scheme+signed)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestOptionalAuthContinuesAnonymously(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// a broken token also falls back to anonymous instead of failing
	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Token garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
