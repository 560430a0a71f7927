package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gemline/repair-service/internal/auth"
	"github.com/gemline/repair-service/internal/service"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// ShipmentsHandler books outbound shipments for mail-return tickets.
type ShipmentsHandler struct {
	service *service.ShipmentService
}

// NewShipmentsHandler constructs handler.
func NewShipmentsHandler(shipmentService *service.ShipmentService) *ShipmentsHandler {
	return &ShipmentsHandler{service: shipmentService}
}

// CreateShipment POST /repairs/:id/shipment. Staff only.
func (h *ShipmentsHandler) CreateShipment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	repair, err := h.service.CreateShipment(c.Context(), actorFrom(principal), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": repairDetail(repair)})
}
