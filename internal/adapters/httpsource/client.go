// Package httpsource fetches live farm readings from the farm's HTTP endpoint.
package httpsource

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// DefaultEndpoint is where the farm gateway serves its latest reading
const DefaultEndpoint = "http://127.0.0.1:8000/YoloFarms"

// Client is an HTTP client for the live farm endpoint.
// It is safe for concurrent use by multiple goroutines.
// This implements the ports.SnapshotFetcher interface
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for endpoint. A zero timeout leaves requests
// bounded only by the caller's context.
func NewClient(endpoint string, timeout time.Duration, tlsConfig *tls.Config) *Client {
	httpClient := &http.Client{Timeout: timeout}
	if tlsConfig != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = tlsConfig
		httpClient.Transport = transport
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// Fetch issues GET <endpoint> and decodes {temperature, humidity, sunlight}
func (c *Client) Fetch(ctx context.Context) (domain.Reading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Reading{}, fmt.Errorf("%w: %d", domain.ErrUpstreamStatus, resp.StatusCode)
	}

	var reading domain.Reading
	if err := json.NewDecoder(resp.Body).Decode(&reading); err != nil {
		return domain.Reading{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return reading, nil
}
