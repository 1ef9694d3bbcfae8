// Package remote implements the HTTP client for the upstream campaign service.
// The record store mirrors local mutations through it; every call is expected
// to fail gracefully when the service is unreachable.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/smartjourney/studio/internal/campaign"
)

// Client is a campaign service API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new campaign service client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// request performs an HTTP request against the campaign service
func (c *Client) request(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
			return fmt.Errorf("HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("API error: %s", errResp.Error)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// FetchCampaigns lists all campaigns held by the service
func (c *Client) FetchCampaigns(ctx context.Context) ([]*campaign.Campaign, error) {
	var out []*campaign.Campaign
	if err := c.request(ctx, http.MethodGet, "/campaigns", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCampaign pushes a newly created campaign
func (c *Client) CreateCampaign(ctx context.Context, rec *campaign.Campaign) error {
	return c.request(ctx, http.MethodPost, "/campaigns", rec, nil)
}

// UpdateCampaign pushes the full record for an existing campaign
func (c *Client) UpdateCampaign(ctx context.Context, rec *campaign.Campaign) error {
	return c.request(ctx, http.MethodPut, "/campaigns/"+rec.ID, rec, nil)
}

// DeleteCampaign removes a campaign from the service
func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, "/campaigns/"+id, nil, nil)
}

// FetchTemplates lists the service's template library
func (c *Client) FetchTemplates(ctx context.Context) ([]*campaign.Template, error) {
	var out []*campaign.Template
	if err := c.request(ctx, http.MethodGet, "/templates", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health checks service availability
func (c *Client) Health(ctx context.Context) error {
	return c.request(ctx, http.MethodGet, "/health", nil, nil)
}
