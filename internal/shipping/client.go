package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/gemline/repair-service/internal/config"
)

// Client requests tracking numbers from the shipping provider. In mock mode
// it fabricates provider-shaped tracking numbers locally, matching the format
// the real integration returns.
type Client struct {
	baseURL    string
	apiKey     string
	useMock    bool
	httpClient *http.Client
}

// NewClient builds a client from config.
func NewClient(cfg config.ShippingConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		useMock: cfg.UseMock || cfg.BaseURL == "",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateShipment requests a tracking number for a repair ticket.
func (c *Client) CreateShipment(ctx context.Context, repairID string) (string, error) {
	if c.useMock {
		return fmt.Sprintf("TH%09dXX", rand.Intn(1_000_000_000)), nil
	}

	body, err := json.Marshal(map[string]string{"referenceId": repairID})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/shipments", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("shipping provider returned %d: %s", resp.StatusCode, string(detail))
	}

	var result struct {
		TrackingNumber string `json:"trackingNumber"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.TrackingNumber == "" {
		return "", fmt.Errorf("shipping provider returned empty tracking number")
	}
	return result.TrackingNumber, nil
}
