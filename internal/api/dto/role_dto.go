package dto

import "github.com/fixworks/repairdesk/internal/domain"

// AssignRoleRequest payload.
type AssignRoleRequest struct {
	Principal string      `json:"principal"`
	Role      domain.Role `json:"role"`
}

// CallerRoleResponse reports the caller's role and admin flag.
type CallerRoleResponse struct {
	Role    domain.Role `json:"role"`
	IsAdmin bool        `json:"is_admin"`
}
