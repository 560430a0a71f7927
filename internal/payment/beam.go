package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gemline/repair-service/internal/config"
)

// OrderItem is one line of a payment-link order. Prices are in satang.
type OrderItem struct {
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ItemName    string `json:"itemName"`
	Price       int64  `json:"price"`
	ProductID   string `json:"productId"`
	Quantity    int    `json:"quantity"`
	SKU         string `json:"sku"`
}

// Order is the order section of the gateway payload.
type Order struct {
	Currency     string      `json:"currency"`
	Description  string      `json:"description"`
	InternalNote string      `json:"internalNote"`
	NetAmount    int64       `json:"netAmount"`
	OrderItems   []OrderItem `json:"orderItems"`
	ReferenceID  string      `json:"referenceId"`
}

// LinkRequest is the full payment-link creation payload.
type LinkRequest struct {
	LinkSettings LinkSettings `json:"linkSettings"`
	Order        Order        `json:"order"`
	RedirectURL  string       `json:"redirectUrl"`
}

// LinkSettings toggles gateway-side link features.
type LinkSettings struct {
	QRPromptPay QRPromptPay `json:"qrPromptPay"`
}

// QRPromptPay enables the PromptPay QR option on the hosted page.
type QRPromptPay struct {
	IsEnabled bool `json:"isEnabled"`
}

// LinkResponse is the hosted payment link returned by the gateway.
type LinkResponse struct {
	PaymentLinkID string `json:"paymentLinkId"`
	URL           string `json:"url"`
}

// Client calls the Beam payment gateway with basic auth.
type Client struct {
	baseURL    string
	apiUser    string
	apiPass    string
	httpClient *http.Client
}

// NewClient builds a client from config.
func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiUser: cfg.APIUser,
		apiPass: cfg.APIPassword,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreatePaymentLink requests a hosted payment link. The gateway keeps no
// association between links for the same order: each call creates a new one.
func (c *Client) CreatePaymentLink(ctx context.Context, linkReq LinkRequest) (*LinkResponse, error) {
	if c.apiUser == "" || c.apiPass == "" {
		return nil, fmt.Errorf("payment gateway credentials not configured")
	}

	body, err := json.Marshal(linkReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/payment-links", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiUser, c.apiPass)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("payment gateway returned %d: %s", resp.StatusCode, string(detail))
	}

	var link LinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return nil, err
	}
	return &link, nil
}
