package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gemline/repair-service/internal/domain"
	"github.com/gemline/repair-service/internal/events"
	"github.com/gemline/repair-service/internal/repository"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	ID   string
	Role domain.Role
}

// RepairService coordinates the repair ticket lifecycle.
type RepairService struct {
	repairs    repository.RepairRepository
	customers  repository.CustomerRepository
	history    repository.RepairHistoryRepository
	dispatcher events.Dispatcher
}

// RepairDependencies bundles repositories for the repair service.
type RepairDependencies struct {
	RepairRepo   repository.RepairRepository
	CustomerRepo repository.CustomerRepository
	HistoryRepo  repository.RepairHistoryRepository
	Dispatcher   events.Dispatcher
}

// RepairCreateInput describes ticket creation payload.
type RepairCreateInput struct {
	CustomerID   *string
	Items        []domain.RepairItem
	ReturnMethod domain.ReturnMethod
}

// RepairUpdateInput carries a partial update: nil fields are left untouched.
type RepairUpdateInput struct {
	Status         *domain.RepairStatus
	CostInternal   *float64
	CostExternal   *float64
	Discount       *float64
	ShippingCost   *float64
	TrackingNumber *string
}

// RepairListFilter describes listing parameters.
type RepairListFilter struct {
	Statuses []domain.RepairStatus
	Limit    int
	Offset   int
}

// StatusSummary is one row of the finance overview.
type StatusSummary struct {
	Status   domain.RepairStatus
	Label    string
	Count    int64
	NetTotal float64
}

// NewRepairService constructs the service.
func NewRepairService(deps RepairDependencies) *RepairService {
	return &RepairService{
		repairs:    deps.RepairRepo,
		customers:  deps.CustomerRepo,
		history:    deps.HistoryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateRepair opens a ticket in the initial pending_check status. Customers
// always create for themselves; staff may create walk-in tickets with no
// customer, or attach one explicitly.
func (s *RepairService) CreateRepair(ctx context.Context, actor Actor, input RepairCreateInput) (*domain.RepairTicket, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.NewValidationError("at least one repair item required", nil)
	}
	for i, item := range input.Items {
		if strings.TrimSpace(item.Description) == "" {
			return nil, apperrors.NewValidationError("item description required", map[string]any{"index": i})
		}
	}
	if !input.ReturnMethod.IsValid() {
		return nil, apperrors.NewValidationError("return_method must be pickup or mail", nil)
	}

	customerID := input.CustomerID
	if !actor.Role.IsStaff() {
		id := actor.ID
		customerID = &id
	}
	if customerID != nil {
		if _, err := s.customers.GetByID(ctx, *customerID); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	repair := &domain.RepairTicket{
		CustomerID:   customerID,
		Status:       domain.StatusPendingCheck,
		Items:        input.Items,
		ReturnMethod: input.ReturnMethod,
	}
	if err := s.repairs.Create(ctx, repair); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventRepairCreated,
		RepairID: repair.ID,
		ActorID:  actor.ID,
		Payload: events.RepairCreatedPayload{
			CustomerID:   repair.CustomerID,
			ReturnMethod: repair.ReturnMethod,
			ItemCount:    len(repair.Items),
		},
	})
	return repair, nil
}

// GetRepair fetches a ticket for its owner or any staff member.
func (s *RepairService) GetRepair(ctx context.Context, actor Actor, repairID string) (*domain.RepairTicket, *domain.Customer, error) {
	repair, err := s.repairs.GetByID(ctx, repairID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if !actor.Role.IsStaff() {
		if repair.CustomerID == nil || *repair.CustomerID != actor.ID {
			return nil, nil, apperrors.NewForbidden("access denied")
		}
	}

	var customer *domain.Customer
	if repair.CustomerID != nil {
		customer, err = s.customers.GetByID(ctx, *repair.CustomerID)
		if err != nil {
			return nil, nil, apperrors.MapError(err)
		}
	}
	return repair, customer, nil
}

// ListRepairs returns tickets visible to the actor: customers see their own,
// staff see everything.
func (s *RepairService) ListRepairs(ctx context.Context, actor Actor, filter RepairListFilter) ([]domain.RepairTicket, error) {
	repoFilter := repository.RepairFilter{
		Statuses: filter.Statuses,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
	if !actor.Role.IsStaff() {
		id := actor.ID
		repoFilter.CustomerID = &id
	}
	repairs, err := s.repairs.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return repairs, nil
}

// UpdateRepair applies a partial update of status, financial fields, and
// tracking number. Only manager and finance roles may call it. When the
// update effectively changes the status, a status-changed event is published
// after the write commits; a failed event handler is returned as warn and
// never rolls the write back.
func (s *RepairService) UpdateRepair(ctx context.Context, actor Actor, repairID string, input RepairUpdateInput) (repair *domain.RepairTicket, warn error, err error) {
	if !actor.Role.IsStaff() {
		return nil, nil, apperrors.NewUnauthorized("manager or finance role required")
	}

	if input.Status != nil && !input.Status.IsValid() {
		return nil, nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *input.Status})
	}
	for name, v := range map[string]*float64{
		"cost_internal": input.CostInternal,
		"cost_external": input.CostExternal,
		"discount":      input.Discount,
		"shipping_cost": input.ShippingCost,
	} {
		if v != nil && *v < 0 {
			return nil, nil, apperrors.NewValidationError(name+" must be non-negative", nil)
		}
	}

	repair, err = s.repairs.GetByID(ctx, repairID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	oldStatus := repair.Status
	if input.CostInternal != nil {
		repair.CostInternal = input.CostInternal
	}
	if input.CostExternal != nil {
		repair.CostExternal = input.CostExternal
	}
	if input.Discount != nil {
		repair.Discount = input.Discount
	}
	if input.ShippingCost != nil {
		repair.ShippingCost = input.ShippingCost
	}
	if input.TrackingNumber != nil {
		repair.TrackingNumber = input.TrackingNumber
	}

	statusChanged := input.Status != nil && *input.Status != oldStatus
	if input.Status != nil {
		repair.Status = *input.Status
	}
	if repair.Status == domain.StatusCompleted {
		if repair.CompletedAt == nil {
			now := time.Now()
			repair.CompletedAt = &now
		}
	} else if repair.CompletedAt != nil {
		repair.CompletedAt = nil
	}

	if err := s.repairs.Update(ctx, repair); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	if statusChanged {
		s.recordStatusChange(ctx, actor.ID, repair.ID, oldStatus, repair.Status)
		warn = s.publishEvent(ctx, events.Event{
			Type:     events.EventRepairStatusChanged,
			RepairID: repair.ID,
			ActorID:  actor.ID,
			Payload: events.RepairStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: repair.Status,
			},
		})
	}
	return repair, warn, nil
}

// DeleteRepair removes a ticket. Staff only.
func (s *RepairService) DeleteRepair(ctx context.Context, actor Actor, repairID string) error {
	if !actor.Role.IsStaff() {
		return apperrors.NewUnauthorized("manager or finance role required")
	}
	if err := s.repairs.Delete(ctx, repairID); err != nil {
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventRepairDeleted,
		RepairID: repairID,
		ActorID:  actor.ID,
	})
	return nil
}

// ListHistory returns the status audit trail for a ticket. Staff only.
func (s *RepairService) ListHistory(ctx context.Context, actor Actor, repairID string) ([]domain.RepairHistory, error) {
	if !actor.Role.IsStaff() {
		return nil, apperrors.NewUnauthorized("manager or finance role required")
	}
	if _, err := s.repairs.GetByID(ctx, repairID); err != nil {
		return nil, apperrors.MapError(err)
	}
	entries, err := s.history.ListByRepair(ctx, repairID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

// Summarize returns per-status ticket counts and net totals for the finance
// dashboard. Staff only.
func (s *RepairService) Summarize(ctx context.Context, actor Actor) ([]StatusSummary, error) {
	if !actor.Role.IsStaff() {
		return nil, apperrors.NewUnauthorized("manager or finance role required")
	}
	counts, err := s.repairs.SummarizeByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	byStatus := make(map[domain.RepairStatus]repository.StatusCount, len(counts))
	for _, entry := range counts {
		byStatus[entry.Status] = entry
	}

	summary := make([]StatusSummary, 0, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		entry := byStatus[status]
		summary = append(summary, StatusSummary{
			Status:   status,
			Label:    status.Label(),
			Count:    entry.Count,
			NetTotal: domain.Round2(entry.NetTotal),
		})
	}
	return summary, nil
}

func (s *RepairService) recordStatusChange(ctx context.Context, actorID, repairID string, oldStatus, newStatus domain.RepairStatus) {
	if s.history == nil {
		return
	}
	entry := &domain.RepairHistory{
		RepairID:    repairID,
		ChangedByID: &actorID,
		OldValue:    map[string]any{"status": oldStatus},
		NewValue:    map[string]any{"status": newStatus},
	}
	// audit trail is best effort: a failed insert never blocks the update
	_ = s.history.Create(ctx, entry)
}

func (s *RepairService) publishEvent(ctx context.Context, event events.Event) error {
	if s.dispatcher == nil {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return s.dispatcher.Publish(ctx, event)
}
