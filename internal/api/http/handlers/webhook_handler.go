package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gemline/repair-service/internal/config"
	"github.com/gemline/repair-service/internal/line"
	"github.com/gemline/repair-service/internal/service"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// WebhookHandler receives LINE platform callbacks. The endpoint is
// unauthenticated; requests are trusted only after the channel signature
// over the raw body checks out.
type WebhookHandler struct {
	service       *service.WebhookService
	channelSecret string
}

// NewWebhookHandler constructs handler.
func NewWebhookHandler(webhookService *service.WebhookService, cfg config.LineConfig) *WebhookHandler {
	return &WebhookHandler{service: webhookService, channelSecret: cfg.ChannelSecret}
}

// HandleWebhook POST /webhook/line.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	body := c.Body()
	signature := c.Get("X-Line-Signature")
	if !line.ValidateSignature(h.channelSecret, body, signature) {
		return apperrors.NewSignatureInvalid()
	}

	inbound, err := line.ParseWebhookBody(body)
	if err != nil {
		return apperrors.NewValidationError("malformed webhook body", nil)
	}

	h.service.HandleEvents(c.Context(), inbound)
	return c.SendStatus(fiber.StatusOK)
}
