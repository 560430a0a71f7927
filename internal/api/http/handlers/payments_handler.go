package handlers

import (
	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/gemline/repair-service/internal/api/dto"
	"github.com/gemline/repair-service/internal/auth"
	"github.com/gemline/repair-service/internal/service"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// PaymentsHandler serves payment link creation for tickets awaiting payment.
type PaymentsHandler struct {
	service *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{service: paymentService}
}

// CreatePaymentLink POST /repairs/:id/payment-link. Staff only. With
// ?format=qr the link is returned as a scannable PNG instead of JSON.
func (h *PaymentsHandler) CreatePaymentLink(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	link, err := h.service.CreatePaymentLink(c.Context(), actorFrom(principal), c.Params("id"))
	if err != nil {
		return err
	}

	if c.Query("format") == "qr" {
		png, err := qrcode.Encode(link.URL, qrcode.Medium, 256)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Status(fiber.StatusCreated).Send(png)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.PaymentLinkResponse{
		PaymentLinkID: link.PaymentLinkID,
		URL:           link.URL,
	}})
}
