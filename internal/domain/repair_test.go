package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairStatusIsValid(t *testing.T) {
	for _, status := range AllStatuses {
		assert.True(t, status.IsValid(), "expected %s to be valid", status)
	}
	assert.False(t, RepairStatus("shipped").IsValid())
	assert.False(t, RepairStatus("").IsValid())
}

func TestRepairStatusLabelAndColor(t *testing.T) {
	tests := []struct {
		status RepairStatus
		label  string
	}{
		{StatusPendingCheck, "รอเช็ค"},
		{StatusPendingSend, "รอส่ง"},
		{StatusRepairing, "กำลังซ่อม"},
		{StatusRepairDone, "ซ่อมเสร็จ"},
		{StatusPendingPayment, "รอชำระ"},
		{StatusReadyToShip, "พร้อมส่ง"},
		{StatusCompleted, "เสร็จสิ้น"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.label, tt.status.Label())
			assert.NotEmpty(t, tt.status.Color())
		})
	}
}

func TestRepairStatusUnknownFallbacks(t *testing.T) {
	unknown := RepairStatus("bogus")
	assert.Empty(t, unknown.Label())
	assert.Empty(t, unknown.Color())
}

func TestNetTotal(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name         string
		costExternal *float64
		discount     *float64
		shippingCost *float64
		want         float64
	}{
		{
			name:         "external minus discount plus shipping",
			costExternal: f(1000),
			discount:     f(100),
			shippingCost: f(50),
			want:         950,
		},
		{
			name: "all nil is zero",
			want: 0,
		},
		{
			name:         "discount larger than cost goes negative",
			costExternal: f(100),
			discount:     f(250),
			want:         -150,
		},
		{
			name:         "rounded to two decimals",
			costExternal: f(10.555),
			want:         10.56,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetTotal(tt.costExternal, tt.discount, tt.shippingCost)
			assert.InDelta(t, tt.want, got, 1e-9)

			ticket := RepairTicket{
				CostExternal: tt.costExternal,
				Discount:     tt.discount,
				ShippingCost: tt.shippingCost,
			}
			assert.InDelta(t, tt.want, ticket.NetTotal(), 1e-9)
		})
	}
}

func TestNetTotalIgnoresInternalCost(t *testing.T) {
	internal := 400.0
	external := 900.0
	ticket := RepairTicket{CostInternal: &internal, CostExternal: &external}
	assert.InDelta(t, 900.0, ticket.NetTotal(), 1e-9)
}

func TestIsWalkIn(t *testing.T) {
	customerID := "customer-1"
	require.True(t, (&RepairTicket{}).IsWalkIn())
	require.False(t, (&RepairTicket{CustomerID: &customerID}).IsWalkIn())
}
