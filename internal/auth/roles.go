package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/fixworks/repairdesk/pkg/util"
)

// RequireIdentity rejects guests. Role checks stay in the services so the
// authorization policy lives in one place; this gate only covers endpoints
// that are meaningless without an identity, like the account profile.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PrincipalFromContext(c).IsAnonymous() {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
