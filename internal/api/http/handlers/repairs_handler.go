package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gemline/repair-service/internal/api/dto"
	"github.com/gemline/repair-service/internal/auth"
	"github.com/gemline/repair-service/internal/domain"
	"github.com/gemline/repair-service/internal/service"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// RepairsHandler manages repair ticket endpoints.
type RepairsHandler struct {
	service *service.RepairService
}

// NewRepairsHandler constructs handler.
func NewRepairsHandler(repairService *service.RepairService) *RepairsHandler {
	return &RepairsHandler{service: repairService}
}

// CreateRepair POST /repairs.
func (h *RepairsHandler) CreateRepair(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateRepairRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.RepairCreateInput{
		CustomerID:   req.CustomerID,
		Items:        itemsFromPayload(req.Items),
		ReturnMethod: req.ReturnMethod,
	}
	repair, err := h.service.CreateRepair(c.Context(), actorFrom(principal), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": repairDetail(repair)})
}

// ListRepairs GET /repairs. Customers see their own tickets; staff see the
// whole board, optionally filtered by status for kanban columns.
func (h *RepairsHandler) ListRepairs(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	filter := parseRepairQuery(c)
	repairs, err := h.service.ListRepairs(c.Context(), actorFrom(principal), filter)
	if err != nil {
		return err
	}
	items := make([]dto.RepairSummary, 0, len(repairs))
	for i := range repairs {
		items = append(items, repairSummary(&repairs[i], nil))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetRepair GET /repairs/:id.
func (h *RepairsHandler) GetRepair(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	repair, customer, err := h.service.GetRepair(c.Context(), actorFrom(principal), c.Params("id"))
	if err != nil {
		return err
	}
	detail := repairDetail(repair)
	if customer != nil {
		name := customer.FullName()
		detail.CustomerName = &name
	}
	return c.JSON(fiber.Map{"data": detail})
}

// UpdateRepair PATCH /repairs/:id. Staff only. When the status change is
// saved but the customer notification fails, the updated ticket is returned
// together with a warnings field.
func (h *RepairsHandler) UpdateRepair(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateRepairRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.RepairUpdateInput{
		Status:         req.Status,
		CostInternal:   req.CostInternal,
		CostExternal:   req.CostExternal,
		Discount:       req.Discount,
		ShippingCost:   req.ShippingCost,
		TrackingNumber: req.TrackingNumber,
	}
	repair, warn, err := h.service.UpdateRepair(c.Context(), actorFrom(principal), c.Params("id"), input)
	if err != nil {
		return err
	}
	body := fiber.Map{"data": repairDetail(repair)}
	if warn != nil {
		body["warnings"] = []string{warn.Error()}
	}
	return c.JSON(body)
}

// DeleteRepair DELETE /repairs/:id. Staff only.
func (h *RepairsHandler) DeleteRepair(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteRepair(c.Context(), actorFrom(principal), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListHistory GET /repairs/:id/history. Staff only.
func (h *RepairsHandler) ListHistory(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	entries, err := h.service.ListHistory(c.Context(), actorFrom(principal), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.RepairHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.RepairHistoryResponse{
			ID:          entry.ID,
			ChangedByID: entry.ChangedByID,
			OldValue:    entry.OldValue,
			NewValue:    entry.NewValue,
			CreatedAt:   entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Summarize GET /repairs/summary. Staff only.
func (h *RepairsHandler) Summarize(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	summary, err := h.service.Summarize(c.Context(), actorFrom(principal))
	if err != nil {
		return err
	}
	items := make([]dto.StatusSummaryResponse, 0, len(summary))
	for _, row := range summary {
		items = append(items, dto.StatusSummaryResponse{
			Status:   row.Status,
			Label:    row.Label,
			Count:    row.Count,
			NetTotal: row.NetTotal,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func actorFrom(principal *auth.Principal) service.Actor {
	return service.Actor{ID: principal.User.ID, Role: principal.User.Role}
}

func parseRepairQuery(c *fiber.Ctx) service.RepairListFilter {
	filter := service.RepairListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.RepairStatus(strings.TrimSpace(part)))
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func itemsFromPayload(payload []dto.RepairItemPayload) []domain.RepairItem {
	items := make([]domain.RepairItem, 0, len(payload))
	for _, item := range payload {
		items = append(items, domain.RepairItem{
			Description: item.Description,
			Images:      item.Images,
			Plating:     item.Plating,
		})
	}
	return items
}

func itemPayloads(items []domain.RepairItem) []dto.RepairItemPayload {
	payload := make([]dto.RepairItemPayload, 0, len(items))
	for _, item := range items {
		payload = append(payload, dto.RepairItemPayload{
			Description: item.Description,
			Images:      item.Images,
			Plating:     item.Plating,
		})
	}
	return payload
}

func repairSummary(repair *domain.RepairTicket, customer *domain.Customer) dto.RepairSummary {
	summary := dto.RepairSummary{
		ID:             repair.ID,
		CustomerID:     repair.CustomerID,
		Status:         repair.Status,
		StatusLabel:    repair.Status.Label(),
		StatusColor:    repair.Status.Color(),
		Items:          itemPayloads(repair.Items),
		ReturnMethod:   repair.ReturnMethod,
		TrackingNumber: repair.TrackingNumber,
		NetTotal:       repair.NetTotal(),
		CreatedAt:      repair.CreatedAt,
		UpdatedAt:      repair.UpdatedAt,
	}
	if customer != nil {
		name := customer.FullName()
		summary.CustomerName = &name
	}
	return summary
}

func repairDetail(repair *domain.RepairTicket) dto.RepairDetailResponse {
	return dto.RepairDetailResponse{
		RepairSummary: repairSummary(repair, nil),
		CostInternal:  repair.CostInternal,
		CostExternal:  repair.CostExternal,
		Discount:      repair.Discount,
		ShippingCost:  repair.ShippingCost,
		CompletedAt:   repair.CompletedAt,
	}
}
