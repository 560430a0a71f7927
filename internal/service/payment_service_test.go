package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemline/repair-service/internal/config"
	"github.com/gemline/repair-service/internal/domain"
)

func paymentConfig() config.PaymentConfig {
	return config.PaymentConfig{Currency: "THB", MailShippingFee: 100}
}

func TestBuildLinkRequestPickup(t *testing.T) {
	repair := &domain.RepairTicket{
		ID:           "aaaa1111-0000-0000-0000-000000000000",
		ReturnMethod: domain.ReturnPickup,
		CostExternal: ptrFloat(1250.50),
		Items: []domain.RepairItem{
			{Description: "necklace clasp", Images: []string{"https://img.example.com/1.jpg"}},
		},
	}

	req := BuildLinkRequest(repair, paymentConfig(), "https://shop.example.com")

	require.Len(t, req.Order.OrderItems, 1)
	item := req.Order.OrderItems[0]
	assert.EqualValues(t, 125050, item.Price)
	assert.Equal(t, "Repair Ticket #aaaa1111", item.ItemName)
	assert.Equal(t, "ARRaaaa1111", item.SKU)
	assert.Equal(t, "https://img.example.com/1.jpg", item.ImageURL)
	assert.Equal(t, repair.ID, item.ProductID)

	assert.EqualValues(t, 125050, req.Order.NetAmount)
	assert.Equal(t, "THB", req.Order.Currency)
	assert.Equal(t, repair.ID, req.Order.ReferenceID)
	assert.True(t, req.LinkSettings.QRPromptPay.IsEnabled)
	assert.Equal(t, "https://shop.example.com/repair/history", req.RedirectURL)
}

func TestBuildLinkRequestMailAddsShippingLine(t *testing.T) {
	repair := &domain.RepairTicket{
		ID:           "bbbb2222-0000-0000-0000-000000000000",
		ReturnMethod: domain.ReturnMail,
		CostExternal: ptrFloat(500),
	}

	req := BuildLinkRequest(repair, paymentConfig(), "https://shop.example.com")

	require.Len(t, req.Order.OrderItems, 2)
	shipping := req.Order.OrderItems[1]
	assert.Equal(t, "EMS / Delivery", shipping.ItemName)
	assert.Equal(t, "SHIP001", shipping.SKU)
	assert.Equal(t, "SHIPPING", shipping.ProductID)
	assert.EqualValues(t, 10000, shipping.Price)
	assert.EqualValues(t, 60000, req.Order.NetAmount)
}

func TestBuildLinkRequestUnpricedTicket(t *testing.T) {
	repair := &domain.RepairTicket{
		ID:           "cccc3333-0000-0000-0000-000000000000",
		ReturnMethod: domain.ReturnPickup,
	}

	req := BuildLinkRequest(repair, paymentConfig(), "https://shop.example.com")
	require.Len(t, req.Order.OrderItems, 1)
	assert.Zero(t, req.Order.OrderItems[0].Price)
	assert.Zero(t, req.Order.NetAmount)
}

func TestCreatePaymentLink(t *testing.T) {
	repairs := newFakeRepairRepo()
	repair := &domain.RepairTicket{
		Status:       domain.StatusPendingPayment,
		ReturnMethod: domain.ReturnMail,
		CostExternal: ptrFloat(900),
		Items:        validItems(),
	}
	require.NoError(t, repairs.Create(context.Background(), repair))

	gateway := &fakeLinkCreator{}
	svc := NewPaymentService(repairs, gateway, paymentConfig(), config.SiteConfig{BaseURL: "https://shop.example.com"})

	link, err := svc.CreatePaymentLink(context.Background(), managerActor, repair.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, link.URL)
	require.Len(t, gateway.requests, 1)
	assert.Equal(t, repair.ID, gateway.requests[0].Order.ReferenceID)

	_, err = svc.CreatePaymentLink(context.Background(), customerActor, repair.ID)
	assert.Error(t, err)

	_, err = svc.CreatePaymentLink(context.Background(), managerActor, "missing")
	assert.Error(t, err)
}

func TestCreatePaymentLinkGatewayFailure(t *testing.T) {
	repairs := newFakeRepairRepo()
	repair := &domain.RepairTicket{ReturnMethod: domain.ReturnPickup, CostExternal: ptrFloat(100)}
	require.NoError(t, repairs.Create(context.Background(), repair))

	gateway := &fakeLinkCreator{err: errors.New("gateway timeout")}
	svc := NewPaymentService(repairs, gateway, paymentConfig(), config.SiteConfig{BaseURL: "https://shop.example.com"})

	_, err := svc.CreatePaymentLink(context.Background(), managerActor, repair.ID)
	require.Error(t, err)
}
