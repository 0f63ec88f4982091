package middleware

import (
	"context"
	"strings"

	"itinfo/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Identity is what an authenticated bearer token resolves to.
type Identity struct {
	UserID  uint
	TokenID string
}

// Authenticator resolves a raw bearer token to an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Identity, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func setIdentity(c *fiber.Ctx, token string, id Identity) {
	c.Locals("userID", id.UserID)
	c.Locals("tokenID", id.TokenID)
	c.Locals("token", token)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, id.UserID))
}

// RequireAuth rejects requests without a valid bearer token. On success the
// user ID, token ID and raw token are stored in Fiber locals.
func RequireAuth(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		id, err := a.Authenticate(c.UserContext(), token)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}

		setIdentity(c, token, id)
		return c.Next()
	}
}

// OptionalAuth populates the identity when a valid token is present and
// never rejects the request.
func OptionalAuth(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := BearerToken(c); token != "" {
			if id, err := a.Authenticate(c.UserContext(), token); err == nil {
				setIdentity(c, token, id)
			}
		}
		return c.Next()
	}
}
