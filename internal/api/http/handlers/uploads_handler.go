package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gemline/repair-service/internal/api/dto"
	"github.com/gemline/repair-service/internal/auth"
	"github.com/gemline/repair-service/internal/storage"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// UploadsHandler issues signed upload URLs for repair item photos.
type UploadsHandler struct {
	signer *storage.Signer
}

// NewUploadsHandler constructs handler.
func NewUploadsHandler(signer *storage.Signer) *UploadsHandler {
	return &UploadsHandler{signer: signer}
}

// CreateUploadURL POST /uploads.
func (h *UploadsHandler) CreateUploadURL(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !h.signer.Configured() {
		return apperrors.NewExternalServiceError("storage", nil)
	}

	var req dto.UploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Filename = strings.TrimSpace(req.Filename)
	if req.Filename == "" || strings.Contains(req.Filename, "/") {
		return apperrors.NewValidationError("filename required and must not contain '/'", nil)
	}
	if req.ContentType == "" {
		req.ContentType = "application/octet-stream"
	}

	uploadURL, publicURL, err := h.signer.SignedUploadURL(principal.User.ID, req.Filename, req.ContentType)
	if err != nil {
		return apperrors.NewExternalServiceError("storage", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.UploadURLResponse{
		UploadURL: uploadURL,
		PublicURL: publicURL,
	}})
}
