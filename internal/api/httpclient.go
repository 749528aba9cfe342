package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/classnote/internal/models"
)

type HTTPClient struct {
	http *http.Client
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{http: &http.Client{Timeout: timeout}}
}

func endpoint(baseURL string, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}

// doJSON sends one request and decodes the response body into out when out
// is non-nil. Connection failures map to ErrUnavailable, a 404 to
// ErrNotFound; any other non-2xx status is returned with the body text.
func (c *HTTPClient) doJSON(ctx context.Context, method, url string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	b, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(b)))
}

func (c *HTTPClient) Ping(ctx context.Context, baseURL string) error {
	if err := c.doJSON(ctx, http.MethodGet, endpoint(baseURL, "/health"), nil, nil); err != nil {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) PushData(ctx context.Context, baseURL string, req *models.PushRequest) error {
	return c.doJSON(ctx, http.MethodPost, endpoint(baseURL, "/api/sync/push"), req, nil)
}

func (c *HTTPClient) PullData(ctx context.Context, baseURL string, username string) (*models.PullResponse, error) {
	u := endpoint(baseURL, "/api/sync/pull") + "?username=" + url.QueryEscape(username)
	var out models.PullResponse
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RegisterDevice(ctx context.Context, baseURL string, reg *models.DeviceRegistration) error {
	return c.doJSON(ctx, http.MethodPost, endpoint(baseURL, "/api/devices/register"), reg, nil)
}

func (c *HTTPClient) DeleteDevice(ctx context.Context, baseURL string, deviceID string) error {
	u := endpoint(baseURL, "/api/devices/") + url.PathEscape(deviceID)
	return c.doJSON(ctx, http.MethodDelete, u, nil, nil)
}

func (c *HTTPClient) GetDevices(ctx context.Context, baseURL string, username string) ([]models.Device, error) {
	u := endpoint(baseURL, "/api/devices") + "?username=" + url.QueryEscape(username)
	var out []models.Device
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) RegisterUser(ctx context.Context, baseURL string, username string) (*models.AuthResponse, error) {
	in := map[string]string{"username": username}
	var out models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint(baseURL, "/api/auth/register"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, baseURL string, username string) (*models.AuthResponse, error) {
	in := map[string]string{"username": username}
	var out models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint(baseURL, "/api/auth/login"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, baseURL string, req *models.TaskRequest) (*models.Task, error) {
	var out models.Task
	if err := c.doJSON(ctx, http.MethodPost, endpoint(baseURL, "/api/tasks"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetTask(ctx context.Context, baseURL string, taskID string) (*models.Task, error) {
	u := endpoint(baseURL, "/api/tasks/") + url.PathEscape(taskID)
	var out models.Task
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetActiveTasks(ctx context.Context, baseURL string) ([]models.Task, error) {
	var out []models.Task
	if err := c.doJSON(ctx, http.MethodGet, endpoint(baseURL, "/api/tasks/active"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) PurgeItem(ctx context.Context, baseURL string, req *models.PurgeRequest) error {
	return c.doJSON(ctx, http.MethodPost, endpoint(baseURL, "/api/purge"), req, nil)
}
