package service

import (
	"context"

	"github.com/gemline/repair-service/internal/domain"
	"github.com/gemline/repair-service/internal/repository"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// ShipmentCreator requests tracking numbers. *shipping.Client implements it.
type ShipmentCreator interface {
	CreateShipment(ctx context.Context, repairID string) (string, error)
}

// ShipmentService books outbound shipments for mail-return tickets.
type ShipmentService struct {
	repairs  repository.RepairRepository
	history  repository.RepairHistoryRepository
	provider ShipmentCreator
}

// NewShipmentService constructs the service.
func NewShipmentService(repairs repository.RepairRepository, history repository.RepairHistoryRepository, provider ShipmentCreator) *ShipmentService {
	return &ShipmentService{repairs: repairs, history: history, provider: provider}
}

// CreateShipment requests a tracking number and persists it on the ticket,
// force-advancing status to ready_to_ship whatever the prior status was.
// Only meaningful for mail returns without an existing tracking number.
func (s *ShipmentService) CreateShipment(ctx context.Context, actor Actor, repairID string) (*domain.RepairTicket, error) {
	if !actor.Role.IsStaff() {
		return nil, apperrors.NewUnauthorized("manager or finance role required")
	}

	repair, err := s.repairs.GetByID(ctx, repairID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if repair.ReturnMethod != domain.ReturnMail {
		return nil, apperrors.NewValidationError("shipment only available for mail return", nil)
	}
	if repair.TrackingNumber != nil && *repair.TrackingNumber != "" {
		return nil, apperrors.NewConflict("shipment already created", map[string]any{
			"tracking_number": *repair.TrackingNumber,
		})
	}

	trackingNumber, err := s.provider.CreateShipment(ctx, repair.ID)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("shipping provider", err)
	}

	oldStatus := repair.Status
	repair.TrackingNumber = &trackingNumber
	repair.Status = domain.StatusReadyToShip
	if err := s.repairs.Update(ctx, repair); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.history != nil && oldStatus != repair.Status {
		entry := &domain.RepairHistory{
			RepairID:    repair.ID,
			ChangedByID: &actor.ID,
			OldValue:    map[string]any{"status": oldStatus},
			NewValue:    map[string]any{"status": repair.Status, "tracking_number": trackingNumber},
		}
		_ = s.history.Create(ctx, entry)
	}
	return repair, nil
}
