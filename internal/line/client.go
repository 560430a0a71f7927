package line

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

// Message is an arbitrary LINE message object (text, flex, template).
type Message map[string]any

// Client talks to the LINE Messaging API. With no channel access token
// configured all sends are no-ops, so local development works without
// credentials.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient builds a client from config.
func NewClient(cfg config.LineConfig) *Client {
	return &Client{
		baseURL:     cfg.APIBaseURL,
		accessToken: cfg.ChannelAccessToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Configured reports whether the client has credentials to send with.
func (c *Client) Configured() bool {
	return c.accessToken != ""
}

// Push sends messages to a user by LINE user id.
func (c *Client) Push(ctx context.Context, to string, messages []Message) error {
	return c.send(ctx, "/v2/bot/message/push", map[string]any{
		"to":       to,
		"messages": messages,
	})
}

// Reply answers an inbound webhook event using its reply token.
func (c *Client) Reply(ctx context.Context, replyToken string, messages []Message) error {
	return c.send(ctx, "/v2/bot/message/reply", map[string]any{
		"replyToken": replyToken,
		"messages":   messages,
	})
}

func (c *Client) send(ctx context.Context, path string, payload map[string]any) error {
	if !c.Configured() {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("line api returned %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
