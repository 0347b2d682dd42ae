package middleware

import (
	"strings"

	"kontak/internal/apperrors"
	"kontak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// identityKey is the Locals key the verified identity is stored under.
const identityKey = "identity"

// AuthRequired is a Fiber middleware that verifies the bearer token and
// attaches the resulting Identity to the request. Handlers retrieve it
// with IdentityFromCtx and pass it explicitly into the service layer.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperrors.Auth("authorization header is required", nil)
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return apperrors.Auth("authorization header format must be 'Bearer <token>'", nil)
		}

		identity, err := authService.ValidateToken(parts[1])
		if err != nil {
			return err
		}

		c.Locals(identityKey, *identity)
		return c.Next()
	}
}

// IdentityFromCtx returns the Identity attached by AuthRequired. It
// should be unreachable without the middleware having run, but a
// missing identity fails safely with an auth error rather than a panic.
func IdentityFromCtx(c *fiber.Ctx) (services.Identity, error) {
	identity, ok := c.Locals(identityKey).(services.Identity)
	if !ok {
		return services.Identity{}, apperrors.Auth("request is not authenticated", nil)
	}
	return identity, nil
}
