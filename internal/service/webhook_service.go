package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/gemline/repair-service/internal/config"
	"github.com/gemline/repair-service/internal/line"
)

// MessageReplier answers inbound webhook events. *line.Client implements it.
type MessageReplier interface {
	Reply(ctx context.Context, replyToken string, messages []line.Message) error
}

// WebhookService maps recognized inbound text commands to template replies
// with deep links back into the app.
type WebhookService struct {
	replier MessageReplier
	siteURL string
	logger  *zap.Logger
}

// NewWebhookService constructs the service.
func NewWebhookService(replier MessageReplier, site config.SiteConfig, logger *zap.Logger) *WebhookService {
	return &WebhookService{replier: replier, siteURL: site.BaseURL, logger: logger}
}

// HandleEvents processes a webhook delivery. Unrecognized events and failed
// replies are logged and skipped; the delivery is always acknowledged.
func (s *WebhookService) HandleEvents(ctx context.Context, inbound []line.InboundEvent) {
	for _, event := range inbound {
		if event.Type != "message" || event.Message.Type != "text" || event.Source.UserID == "" {
			continue
		}

		var reply line.Message
		switch strings.TrimSpace(event.Message.Text) {
		case "ลงทะเบียน", "แก้ทะเบียน":
			reply = line.ButtonsTemplate(
				"ลงทะเบียน/แก้ไขข้อมูล",
				"กรุณากดปุ่มด้านล่างเพื่อลงทะเบียนหรือแก้ไขข้อมูล",
				"ลงทะเบียน / แก้ไขข้อมูล",
				s.siteURL+"/register",
			)
		case "ส่งซ่อม":
			reply = line.ButtonsTemplate(
				"ส่งซ่อม",
				"กรุณากดปุ่มด้านล่างเพื่อส่งคำขอซ่อม",
				"แจ้งส่งซ่อม",
				s.siteURL+"/repair/new",
			)
		default:
			continue
		}

		if err := s.replier.Reply(ctx, event.ReplyToken, []line.Message{reply}); err != nil {
			s.logger.Error("failed to reply to webhook event",
				zap.String("user_id", event.Source.UserID),
				zap.Error(err))
		}
	}
}
