package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gemline/repair-service/internal/api/dto"
	"github.com/gemline/repair-service/internal/domain"
	"github.com/gemline/repair-service/internal/service"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.Email) == "" {
		return apperrors.NewValidationError("first_name and email required", nil)
	}
	if len(req.Password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	input := service.RegisterInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Mobile:     req.Mobile,
		Password:   req.Password,
		LineUserID: req.LineUserID,
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

	customer, token, expiresAt, err := h.service.Register(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Customer:  customerResponse(customer, nil),
	}})
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	customer, token, expiresAt, err := h.service.Login(c.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Customer:  customerResponse(customer, nil),
	}})
}

func customerResponse(customer *domain.Customer, address *domain.Address) dto.CustomerResponse {
	resp := dto.CustomerResponse{
		ID:         customer.ID,
		FirstName:  customer.FirstName,
		LastName:   customer.LastName,
		Email:      customer.Email,
		Mobile:     customer.Mobile,
		Role:       customer.Role,
		LineLinked: customer.LineUserID != nil && *customer.LineUserID != "",
		CreatedAt:  customer.CreatedAt,
	}
	if address != nil {
		resp.Address = &dto.AddressPayload{
			Province:    address.Province,
			District:    address.District,
			SubDistrict: address.SubDistrict,
			PostalCode:  address.PostalCode,
			Details:     address.Details,
		}
	}
	return resp
}
