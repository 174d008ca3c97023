package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fixworks/repairdesk/internal/domain"
	apperrors "github.com/fixworks/repairdesk/pkg/util"
)

const principalKey = "auth_principal"

// Middleware resolves bearer tokens to principals. Requests without an
// Authorization header pass through as guests (the anonymous principal);
// a malformed or invalid token is rejected rather than downgraded.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Resolve attaches the caller principal to the request context.
func (m *Middleware) Resolve(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		c.Locals(principalKey, domain.Anonymous)
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(principalKey, domain.Principal(claims.Principal))
	return c.Next()
}

// PrincipalFromContext retrieves the caller principal, anonymous when absent.
func PrincipalFromContext(c *fiber.Ctx) domain.Principal {
	val := c.Locals(principalKey)
	if val == nil {
		return domain.Anonymous
	}
	principal, ok := val.(domain.Principal)
	if !ok {
		return domain.Anonymous
	}
	return principal
}
