package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixworks/repairdesk/internal/api/dto"
	"github.com/fixworks/repairdesk/internal/auth"
	"github.com/fixworks/repairdesk/internal/service"
	apperrors "github.com/fixworks/repairdesk/pkg/util"
)

// AdminTicketsHandler manages the staff-only ticket surface.
type AdminTicketsHandler struct {
	service *service.TicketService
}

// NewAdminTicketsHandler constructs handler.
func NewAdminTicketsHandler(ticketService *service.TicketService) *AdminTicketsHandler {
	return &AdminTicketsHandler{service: ticketService}
}

// ListAllTickets GET /admin/tickets.
func (h *AdminTicketsHandler) ListAllTickets(c *fiber.Ctx) error {
	caller := auth.PrincipalFromContext(c)
	tickets, err := h.service.GetAll(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTickets(tickets)})
}

// UpdateStatus PATCH /admin/tickets/:id/status.
func (h *AdminTicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	caller := auth.PrincipalFromContext(c)
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.UpdateStatus(c.UserContext(), caller, id, service.StatusUpdateInput{
		NewStatus:     req.NewStatus,
		Notes:         req.Notes,
		PriceEstimate: req.PriceEstimate,
	}); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
