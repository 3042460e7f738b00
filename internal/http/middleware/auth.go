package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"capsterapi/internal/auth"
	"capsterapi/internal/model"
)

// SessionLocalKey is the locals key under which Authenticate stores the
// verified session for downstream handlers.
const SessionLocalKey = "session"

// Authenticate verifies the Authorization bearer token and stores the
// resulting session in locals. Requests without a valid token are rejected
// with 401 via the global error handler.
func Authenticate(verifier *auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		sess, err := verifier.ParseSession(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(SessionLocalKey, sess)
		return c.Next()
	}
}

// RequireRole guards a route group behind a single role. It assumes
// Authenticate already ran.
func RequireRole(role model.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := SessionFromCtx(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing session")
		}
		if sess.Role != role {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// SessionFromCtx returns the session stored by Authenticate, if any.
func SessionFromCtx(c *fiber.Ctx) (model.Session, bool) {
	sess, ok := c.Locals(SessionLocalKey).(model.Session)
	return sess, ok
}
