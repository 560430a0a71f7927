package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gemline/repair-service/internal/api/dto"
	"github.com/gemline/repair-service/internal/auth"
	"github.com/gemline/repair-service/internal/service"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// ProfileHandler serves the authenticated account's own profile.
type ProfileHandler struct {
	service *service.CustomerService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(customerService *service.CustomerService) *ProfileHandler {
	return &ProfileHandler{service: customerService}
}

// GetProfile GET /profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	customer, address, err := h.service.GetProfile(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer, address)})
}

// UpdateProfile PUT /profile.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.ProfileUpdateInput{}
	if req.FirstName != nil {
		input.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		input.LastName = *req.LastName
	}
	if req.Mobile != nil {
		input.Mobile = *req.Mobile
	}
	if req.Address != nil {
		input.Address = &service.AddressInput{
			Province:    req.Address.Province,
			District:    req.Address.District,
			SubDistrict: req.Address.SubDistrict,
			PostalCode:  req.Address.PostalCode,
			Details:     req.Address.Details,
		}
	}

	customer, address, err := h.service.UpdateProfile(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer, address)})
}

// LinkLine POST /profile/line.
func (h *ProfileHandler) LinkLine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.LinkLineRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.LineUserID == "" {
		return apperrors.NewValidationError("line_user_id required", nil)
	}
	if err := h.service.LinkLineAccount(c.Context(), principal.User.ID, req.LineUserID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
