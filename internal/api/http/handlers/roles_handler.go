package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fixworks/repairdesk/internal/api/dto"
	"github.com/fixworks/repairdesk/internal/auth"
	"github.com/fixworks/repairdesk/internal/domain"
	"github.com/fixworks/repairdesk/internal/service"
	apperrors "github.com/fixworks/repairdesk/pkg/util"
)

// RolesHandler exposes role queries and admin-only assignment.
type RolesHandler struct {
	roles *service.RoleService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roleService *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roleService}
}

// GetCallerRole GET /roles/me. Works for guests too.
func (h *RolesHandler) GetCallerRole(c *fiber.Ctx) error {
	caller := auth.PrincipalFromContext(c)
	role, err := h.roles.GetRole(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CallerRoleResponse{
		Role:    role,
		IsAdmin: role == domain.RoleAdmin,
	}})
}

// AssignRole POST /admin/roles.
func (h *RolesHandler) AssignRole(c *fiber.Ctx) error {
	caller := auth.PrincipalFromContext(c)
	var req dto.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Principal) == "" {
		return apperrors.NewValidationError("principal required", nil)
	}

	if err := h.roles.AssignRole(c.UserContext(), caller, domain.Principal(req.Principal), req.Role); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
