package dto

import (
	"time"

	"github.com/gemline/repair-service/internal/domain"
)

// RepairItemPayload mirrors one item of a ticket on the wire.
type RepairItemPayload struct {
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Plating     bool     `json:"plating"`
}

// CreateRepairRequest payload.
type CreateRepairRequest struct {
	CustomerID   *string             `json:"customer_id"`
	Items        []RepairItemPayload `json:"items"`
	ReturnMethod domain.ReturnMethod `json:"return_method"`
}

// UpdateRepairRequest carries a partial update; absent fields stay untouched.
type UpdateRepairRequest struct {
	Status         *domain.RepairStatus `json:"status"`
	CostInternal   *float64             `json:"cost_internal"`
	CostExternal   *float64             `json:"cost_external"`
	Discount       *float64             `json:"discount"`
	ShippingCost   *float64             `json:"shipping_cost"`
	TrackingNumber *string              `json:"tracking_number"`
}

// RepairSummary response for listings and the kanban board.
type RepairSummary struct {
	ID             string              `json:"id"`
	CustomerID     *string             `json:"customer_id"`
	CustomerName   *string             `json:"customer_name,omitempty"`
	Status         domain.RepairStatus `json:"status"`
	StatusLabel    string              `json:"status_label"`
	StatusColor    string              `json:"status_color"`
	Items          []RepairItemPayload `json:"items"`
	ReturnMethod   domain.ReturnMethod `json:"return_method"`
	TrackingNumber *string             `json:"tracking_number"`
	NetTotal       float64             `json:"net_total"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// RepairDetailResponse provides full ticket info including pricing fields.
type RepairDetailResponse struct {
	RepairSummary
	CostInternal *float64   `json:"cost_internal"`
	CostExternal *float64   `json:"cost_external"`
	Discount     *float64   `json:"discount"`
	ShippingCost *float64   `json:"shipping_cost"`
	CompletedAt  *time.Time `json:"completed_at"`
}

// RepairHistoryResponse is one audit entry.
type RepairHistoryResponse struct {
	ID          string         `json:"id"`
	ChangedByID *string        `json:"changed_by_id"`
	OldValue    map[string]any `json:"old_value"`
	NewValue    map[string]any `json:"new_value"`
	CreatedAt   time.Time      `json:"created_at"`
}

// StatusSummaryResponse is one row of the finance overview.
type StatusSummaryResponse struct {
	Status   domain.RepairStatus `json:"status"`
	Label    string              `json:"label"`
	Count    int64               `json:"count"`
	NetTotal float64             `json:"net_total"`
}

// PaymentLinkResponse carries the hosted checkout link.
type PaymentLinkResponse struct {
	PaymentLinkID string `json:"payment_link_id"`
	URL           string `json:"url"`
}

// UploadURLRequest asks for a signed upload slot.
type UploadURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// UploadURLResponse returns the signed PUT URL plus the public object URL.
type UploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}
