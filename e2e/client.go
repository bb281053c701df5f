//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"os"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
	monitorhttp "github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor/http"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/pages"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/settings"
)

const defaultAPIURL = "http://localhost:8100/api/v1"

// TestClient represents a test API client
type TestClient struct {
	baseURL string
}

// NewTestClient creates a new test client using environment variables
func NewTestClient() *TestClient {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &TestClient{baseURL: apiURL}
}

// DoRequest performs an HTTP request against the API
func (c *TestClient) DoRequest(method, path string, body interface{}) (*nethttp.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := nethttp.NewRequest(method, fmt.Sprintf("%s%s", c.baseURL, path), reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := nethttp.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func (c *TestClient) decode(resp *nethttp.Response, wantStatus int, out interface{}) error {
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CreatePage registers a page
func (c *TestClient) CreatePage(params *pages.CreatePageParams) (*pages.Page, error) {
	resp, err := c.DoRequest(nethttp.MethodPost, "/pages", params)
	if err != nil {
		return nil, err
	}
	var page pages.Page
	if err := c.decode(resp, nethttp.StatusCreated, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPage fetches a page by ID
func (c *TestClient) GetPage(id int64) (*pages.Page, error) {
	resp, err := c.DoRequest(nethttp.MethodGet, fmt.Sprintf("/pages/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var page pages.Page
	if err := c.decode(resp, nethttp.StatusOK, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeletePage removes a page
func (c *TestClient) DeletePage(id int64) error {
	resp, err := c.DoRequest(nethttp.MethodDelete, fmt.Sprintf("/pages/%d", id), nil)
	if err != nil {
		return err
	}
	return c.decode(resp, nethttp.StatusNoContent, nil)
}

// CheckPage triggers an immediate check of a registered page
func (c *TestClient) CheckPage(id int64) (*monitor.CheckResult, error) {
	resp, err := c.DoRequest(nethttp.MethodPost, fmt.Sprintf("/checks/pages/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var result monitor.CheckResult
	if err := c.decode(resp, nethttp.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckURL runs an ad-hoc check of an arbitrary URL
func (c *TestClient) CheckURL(url string) (*monitor.CheckResult, error) {
	resp, err := c.DoRequest(nethttp.MethodPost, "/checks/url", &monitorhttp.CheckURLRequest{URL: url})
	if err != nil {
		return nil, err
	}
	var result monitor.CheckResult
	if err := c.decode(resp, nethttp.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetSettings fetches the monitoring configuration
func (c *TestClient) GetSettings() (*settings.Setting, error) {
	resp, err := c.DoRequest(nethttp.MethodGet, "/settings", nil)
	if err != nil {
		return nil, err
	}
	var setting settings.Setting
	if err := c.decode(resp, nethttp.StatusOK, &setting); err != nil {
		return nil, err
	}
	return &setting, nil
}

// UpdateSettings replaces the monitoring configuration
func (c *TestClient) UpdateSettings(params *settings.UpdateSettingParams) (*settings.Setting, error) {
	resp, err := c.DoRequest(nethttp.MethodPut, "/settings", params)
	if err != nil {
		return nil, err
	}
	var setting settings.Setting
	if err := c.decode(resp, nethttp.StatusOK, &setting); err != nil {
		return nil, err
	}
	return &setting, nil
}

// StatusSnapshot fetches the aggregated status summary
func (c *TestClient) StatusSnapshot() (*pages.StatusSummary, error) {
	resp, err := c.DoRequest(nethttp.MethodGet, "/checks/status", nil)
	if err != nil {
		return nil, err
	}
	var summary pages.StatusSummary
	if err := c.decode(resp, nethttp.StatusOK, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
