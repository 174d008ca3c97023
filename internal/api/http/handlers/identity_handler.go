package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fixworks/repairdesk/internal/api/dto"
	"github.com/fixworks/repairdesk/internal/auth"
	"github.com/fixworks/repairdesk/internal/service"
	apperrors "github.com/fixworks/repairdesk/pkg/util"
)

// IdentityHandler exposes the authentication-provider adapter.
type IdentityHandler struct {
	identity *service.IdentityService
}

// NewIdentityHandler constructs handler.
func NewIdentityHandler(identityService *service.IdentityService) *IdentityHandler {
	return &IdentityHandler{identity: identityService}
}

// Register POST /auth/register.
func (h *IdentityHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	account, token, expiresAt, err := h.identity.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.SessionResponse{
		Principal: string(account.Principal),
		Token:     token,
		ExpiresAt: expiresAt.UnixNano(),
	}})
}

// Login POST /auth/login.
func (h *IdentityHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	account, token, expiresAt, err := h.identity.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		Principal: string(account.Principal),
		Token:     token,
		ExpiresAt: expiresAt.UnixNano(),
	}})
}

// Me GET /auth/me.
func (h *IdentityHandler) Me(c *fiber.Ctx) error {
	caller := auth.PrincipalFromContext(c)
	account, err := h.identity.Whoami(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AccountResponse{
		Principal: string(account.Principal),
		Name:      account.Name,
		Email:     account.Email,
	}})
}
