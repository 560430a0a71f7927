package service

import (
	"context"
	"fmt"
	"math"

	"github.com/gemline/repair-service/internal/config"
	"github.com/gemline/repair-service/internal/domain"
	"github.com/gemline/repair-service/internal/payment"
	"github.com/gemline/repair-service/internal/repository"
	apperrors "github.com/gemline/repair-service/pkg/util"
)

// LinkCreator requests hosted payment links. *payment.Client implements it.
type LinkCreator interface {
	CreatePaymentLink(ctx context.Context, req payment.LinkRequest) (*payment.LinkResponse, error)
}

// PaymentService builds payment-link orders for repair tickets.
type PaymentService struct {
	repairs repository.RepairRepository
	gateway LinkCreator
	cfg     config.PaymentConfig
	siteURL string
}

// NewPaymentService constructs the service.
func NewPaymentService(repairs repository.RepairRepository, gateway LinkCreator, cfg config.PaymentConfig, site config.SiteConfig) *PaymentService {
	return &PaymentService{
		repairs: repairs,
		gateway: gateway,
		cfg:     cfg,
		siteURL: site.BaseURL,
	}
}

// CreatePaymentLink requests a hosted payment link for the ticket's payable
// amount. The link is never persisted: calling again makes a fresh,
// unrelated link at the gateway.
func (s *PaymentService) CreatePaymentLink(ctx context.Context, actor Actor, repairID string) (*payment.LinkResponse, error) {
	if !actor.Role.IsStaff() {
		return nil, apperrors.NewUnauthorized("manager or finance role required")
	}

	repair, err := s.repairs.GetByID(ctx, repairID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	link, err := s.gateway.CreatePaymentLink(ctx, BuildLinkRequest(repair, s.cfg, s.siteURL))
	if err != nil {
		return nil, apperrors.NewExternalServiceError("payment gateway", err)
	}
	return link, nil
}

// BuildLinkRequest composes the gateway order for a ticket: one repair
// service line priced at the external cost, plus a shipping line when the
// items go back by mail. Line prices are in satang.
func BuildLinkRequest(repair *domain.RepairTicket, cfg config.PaymentConfig, siteURL string) payment.LinkRequest {
	costExternal := 0.0
	if repair.CostExternal != nil {
		costExternal = *repair.CostExternal
	}
	shippingFee := 0.0
	if repair.ReturnMethod == domain.ReturnMail {
		shippingFee = cfg.MailShippingFee
	}

	short := shortID(repair.ID)
	imageURL := ""
	if len(repair.Items) > 0 && len(repair.Items[0].Images) > 0 {
		imageURL = repair.Items[0].Images[0]
	}

	items := []payment.OrderItem{
		{
			Description: "Repair Service",
			ImageURL:    imageURL,
			ItemName:    fmt.Sprintf("Repair Ticket #%s", short),
			Price:       toSatang(costExternal),
			ProductID:   repair.ID,
			Quantity:    1,
			SKU:         "ARR" + short,
		},
	}
	if shippingFee > 0 {
		items = append(items, payment.OrderItem{
			Description: "Shipping Fee",
			ItemName:    "EMS / Delivery",
			Price:       toSatang(shippingFee),
			ProductID:   "SHIPPING",
			Quantity:    1,
			SKU:         "SHIP001",
		})
	}

	var netAmount int64
	for _, item := range items {
		netAmount += item.Price
	}

	return payment.LinkRequest{
		LinkSettings: payment.LinkSettings{
			QRPromptPay: payment.QRPromptPay{IsEnabled: true},
		},
		Order: payment.Order{
			Currency:     cfg.Currency,
			Description:  fmt.Sprintf("Repair Service for Ticket #%s", short),
			InternalNote: fmt.Sprintf("Repair ID: %s", repair.ID),
			NetAmount:    netAmount,
			OrderItems:   items,
			ReferenceID:  repair.ID,
		},
		RedirectURL: siteURL + "/repair/history",
	}
}

func toSatang(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
