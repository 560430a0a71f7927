package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gemline/repair-service/internal/api/dto"
	"github.com/gemline/repair-service/internal/service"
)

// LocationsHandler serves the Thai administrative-area lookup.
type LocationsHandler struct {
	service *service.LocationService
}

// NewLocationsHandler constructs handler.
func NewLocationsHandler(locationService *service.LocationService) *LocationsHandler {
	return &LocationsHandler{service: locationService}
}

// ListLocations GET /locations.
func (h *LocationsHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		items = append(items, dto.LocationResponse{
			Province: loc.Province,
			Amphoe:   loc.Amphoe,
			Tambon:   loc.Tambon,
			Zipcode:  loc.Zipcode,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
