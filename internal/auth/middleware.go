package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ArmishRehan/Coupon/internal/model"
)

// principalKey is the fiber locals key under which the verified claims live.
const principalKey = "auth.principal"

// Authenticate returns middleware that resolves the Authorization header into
// a principal. Requests without a valid bearer token get a 401.
func Authenticate(tokens *TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided"})
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(principalKey, claims)
		return c.Next()
	}
}

// RequireRole returns middleware that rejects callers whose role does not
// match. It never mutates state: the gated handler is not reached on mismatch.
func RequireRole(role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Principal(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided"})
		}
		if claims.Role != role {
			log.Warn().
				Int64("user_id", claims.UserID).
				Str("role", string(claims.Role)).
				Str("required_role", string(role)).
				Str("path", c.Path()).
				Msg("access denied")
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
		}
		return c.Next()
	}
}

// Principal returns the verified claims for the current request, or nil when
// the request did not pass Authenticate.
func Principal(c *fiber.Ctx) *Claims {
	claims, _ := c.Locals(principalKey).(*Claims)
	return claims
}
