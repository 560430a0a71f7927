package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gemline/repair-service/internal/config"
	"github.com/gemline/repair-service/internal/events"
	"github.com/gemline/repair-service/internal/line"
	"github.com/gemline/repair-service/internal/repository"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// MessagePusher sends messages to a user on the messaging channel.
// *line.Client implements it.
type MessagePusher interface {
	Push(ctx context.Context, to string, messages []line.Message) error
	Configured() bool
}

// NotificationService pushes a LINE message to the ticket's customer whenever
// the ticket status changes.
type NotificationService struct {
	dispatcher events.Dispatcher
	repairs    repository.RepairRepository
	customers  repository.CustomerRepository
	pusher     MessagePusher
	siteURL    string
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, repairs repository.RepairRepository, customers repository.CustomerRepository, pusher MessagePusher, site config.SiteConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		repairs:    repairs,
		customers:  customers,
		pusher:     pusher,
		siteURL:    site.BaseURL,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRepairStatusChanged, n.handleStatusChanged)
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RepairStatusChangedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for status change event", zap.String("event_id", event.ID))
		return nil
	}

	repair, err := n.repairs.GetByID(ctx, event.RepairID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if repair.CustomerID == nil {
		n.logger.Info("walk-in ticket, skipping notification", zap.String("repair_id", event.RepairID))
		return nil
	}

	customer, err := n.customers.GetByID(ctx, *repair.CustomerID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if customer.LineUserID == nil || *customer.LineUserID == "" {
		n.logger.Info("customer has no messaging channel, skipping notification",
			zap.String("repair_id", event.RepairID),
			zap.String("customer_id", customer.ID))
		return nil
	}

	statusLabel := payload.NewStatus.Label()
	messages := []line.Message{
		line.TextMessage(fmt.Sprintf("สถานะการซ่อมของคุณเปลี่ยนเป็น: %s", statusLabel)),
		line.StatusFlexMessage(shortID(repair.ID), statusLabel, n.siteURL+"/repair/history"),
	}

	if err := n.pusher.Push(ctx, *customer.LineUserID, messages); err != nil {
		n.logger.Error("failed to push status notification",
			zap.String("repair_id", event.RepairID),
			zap.Error(err))
		return apperrors.NewExternalServiceError("LINE", err)
	}

	n.logger.Info("status notification sent",
		zap.String("repair_id", event.RepairID),
		zap.String("new_status", string(payload.NewStatus)))
	return nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
