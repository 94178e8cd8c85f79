package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/conduitapp/conduit/internal/pkg/token"
	"github.com/conduitapp/conduit/internal/pkg/usercontext"
)

// RequireAuth rejects requests without a valid bearer token and stores
// the resolved actor identity in the request locals.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractTokenFromHeader(c)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing authentication token"})
		}

		claims, err := token.Verify(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid or expired token"})
		}

		usercontext.SetUserContext(c, usercontext.UserContext{
			UserID:     claims.UserID,
			Username:   claims.Username,
			IsLoggedIn: true,
		})

		return c.Next()
	}
}

// OptionalAuth resolves the actor identity when a valid token is present
// and continues anonymously otherwise. Listing and single-entity reads
// use this so responses can carry personalized following/favorited flags.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractTokenFromHeader(c)
		if raw != "" {
			if claims, err := token.Verify(raw); err == nil {
				usercontext.SetUserContext(c, usercontext.UserContext{
					UserID:     claims.UserID,
					Username:   claims.Username,
					IsLoggedIn: true,
				})
			}
		}
		return c.Next()
	}
}

// extractTokenFromHeader accepts both "Token <jwt>" (RealWorld clients)
// and "Bearer <jwt>" authorization schemes.
func extractTokenFromHeader(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get("Authorization"))
	lower := strings.ToLower(auth)
	if strings.HasPrefix(lower, "token ") || strings.HasPrefix(lower, "bearer ") {
		return strings.TrimSpace(auth[strings.Index(auth, " ")+1:])
	}
	return ""
}
