package shipping

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemline/repair-service/internal/config"
)

var trackingFormat = regexp.MustCompile(`^TH\d{9}XX$`)

func TestMockTrackingNumberFormat(t *testing.T) {
	client := NewClient(config.ShippingConfig{UseMock: true})

	for i := 0; i < 20; i++ {
		tracking, err := client.CreateShipment(context.Background(), "repair-1")
		require.NoError(t, err)
		assert.Regexp(t, trackingFormat, tracking)
	}
}

func TestMockModeForcedWithoutBaseURL(t *testing.T) {
	client := NewClient(config.ShippingConfig{UseMock: false, BaseURL: ""})

	tracking, err := client.CreateShipment(context.Background(), "repair-1")
	require.NoError(t, err)
	assert.Regexp(t, trackingFormat, tracking)
}

func TestRealModeCallsProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/shipments", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "repair-42", body["referenceId"])

		_ = json.NewEncoder(w).Encode(map[string]string{"trackingNumber": "TH555000111XX"})
	}))
	defer server.Close()

	client := NewClient(config.ShippingConfig{BaseURL: server.URL, APIKey: "test-key"})

	tracking, err := client.CreateShipment(context.Background(), "repair-42")
	require.NoError(t, err)
	assert.Equal(t, "TH555000111XX", tracking)
}

func TestRealModeProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(config.ShippingConfig{BaseURL: server.URL, APIKey: "test-key"})

	_, err := client.CreateShipment(context.Background(), "repair-42")
	assert.Error(t, err)
}
