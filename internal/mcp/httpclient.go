package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/meltforce/barbell/internal/models"
)

// HTTPClient implements Planner by calling the barbell REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// presets and notes live on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Planner = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: encode %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Presets(ctx context.Context) ([]models.PresetSummary, error) {
	var presets []models.PresetSummary
	if err := c.do(ctx, http.MethodGet, "/api/v1/presets", nil, &presets); err != nil {
		return nil, err
	}
	return presets, nil
}

func (c *HTTPClient) Generate(ctx context.Context, req models.PlanRequest) (*models.Plan, error) {
	var plan models.Plan
	if err := c.do(ctx, http.MethodPost, "/api/v1/programs", req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *HTTPClient) Estimate(ctx context.Context, input, method string) (float64, error) {
	var resp estimateResult
	in := map[string]string{"max": input}
	if method != "" {
		in["method"] = method
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/estimate", in, &resp); err != nil {
		return 0, err
	}
	return resp.OneRepMax, nil
}
