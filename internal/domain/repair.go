package domain

import (
	"math"
	"time"
)

// RepairStatus enumerates lifecycle states for repair tickets.
type RepairStatus string

const (
	StatusPendingCheck   RepairStatus = "pending_check"
	StatusPendingSend    RepairStatus = "pending_send"
	StatusRepairing      RepairStatus = "repairing"
	StatusRepairDone     RepairStatus = "repair_done"
	StatusPendingPayment RepairStatus = "pending_payment"
	StatusReadyToShip    RepairStatus = "ready_to_ship"
	StatusCompleted      RepairStatus = "completed"
)

// AllStatuses lists statuses in board column order.
var AllStatuses = []RepairStatus{
	StatusPendingCheck,
	StatusPendingSend,
	StatusRepairing,
	StatusRepairDone,
	StatusPendingPayment,
	StatusReadyToShip,
	StatusCompleted,
}

// statusInfo keeps the display label and board color for each status in one
// place so the kanban board and the ticket-history view never diverge.
var statusInfo = map[RepairStatus]struct {
	Label string
	Color string
}{
	StatusPendingCheck:   {Label: "รอเช็ค", Color: "#eab308"},
	StatusPendingSend:    {Label: "รอส่ง", Color: "#f97316"},
	StatusRepairing:      {Label: "กำลังซ่อม", Color: "#3b82f6"},
	StatusRepairDone:     {Label: "ซ่อมเสร็จ", Color: "#6366f1"},
	StatusPendingPayment: {Label: "รอชำระ", Color: "#ec4899"},
	StatusReadyToShip:    {Label: "พร้อมส่ง", Color: "#a855f7"},
	StatusCompleted:      {Label: "เสร็จสิ้น", Color: "#22c55e"},
}

// IsValid reports whether the status is one of the seven recognized values.
func (s RepairStatus) IsValid() bool {
	_, ok := statusInfo[s]
	return ok
}

// Label returns the human-readable (Thai) label for the status.
func (s RepairStatus) Label() string {
	return statusInfo[s].Label
}

// Color returns the display color used on the board and history views.
func (s RepairStatus) Color() string {
	return statusInfo[s].Color
}

// ReturnMethod describes how the repaired items go back to the customer.
type ReturnMethod string

const (
	ReturnPickup ReturnMethod = "pickup"
	ReturnMail   ReturnMethod = "mail"
)

// IsValid reports whether the return method is recognized.
func (m ReturnMethod) IsValid() bool {
	return m == ReturnPickup || m == ReturnMail
}

// RepairItem is one physical object submitted for repair.
type RepairItem struct {
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Plating     bool     `json:"plating"`
}

// RepairTicket is the aggregate for repair requests.
type RepairTicket struct {
	ID             string
	CustomerID     *string
	Status         RepairStatus
	Items          []RepairItem
	ReturnMethod   ReturnMethod
	TrackingNumber *string
	CostInternal   *float64
	CostExternal   *float64
	Discount       *float64
	ShippingCost   *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
}

// IsWalkIn reports whether the ticket has no registered customer.
func (t *RepairTicket) IsWalkIn() bool {
	return t.CustomerID == nil
}

// NetTotal computes the payable amount for a ticket. Missing fields count as
// zero and the result is not floored, so a discount larger than the external
// cost yields a negative total.
func (t *RepairTicket) NetTotal() float64 {
	return NetTotal(t.CostExternal, t.Discount, t.ShippingCost)
}

// NetTotal is the single shared price formula: external cost minus discount
// plus shipping cost, rounded to two decimals.
func NetTotal(costExternal, discount, shippingCost *float64) float64 {
	return Round2(deref(costExternal) - deref(discount) + deref(shippingCost))
}

// Round2 rounds a monetary amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
