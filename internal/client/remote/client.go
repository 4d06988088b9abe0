// Package remote implements the backend that talks to the TaskKeeper REST
// API over HTTP. Responses use the server's envelope format; failures are
// mapped onto the shared sentinel errors so callers can switch between
// backends without caring which one answered.
package remote

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

	"github.com/mpetrov/taskkeeper/internal/api"
	"github.com/mpetrov/taskkeeper/internal/common"
)

type Client struct {
	baseURL      string
	httpClient   *http.Client
	probeTimeout time.Duration
	accessToken  string
}

func NewClient(baseURL string, probeTimeout time.Duration) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{},
		probeTimeout: probeTimeout,
	}
}

// do sends one API request and decodes the envelope payload into out (which
// may be nil). Transport failures map to common.ErrUnavailable so the
// dispatcher can fall back to the local backend.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.ErrUnavailable
	}
	defer resp.Body.Close()

	var env api.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return c.mapError(resp.StatusCode, env.Message)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

func (c *Client) mapError(status int, message string) error {
	switch status {
	case http.StatusBadRequest:
		if message != "" {
			return fmt.Errorf("%w: %s", common.ErrValidation, message)
		}
		return common.ErrValidation
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		return common.ErrConflict
	default:
		return common.ErrInternal
	}
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	req := api.SignupRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	c.accessToken = resp.Token
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	req := api.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.accessToken = resp.Token
	return &resp, nil
}

// Logout drops the bearer token. The server keeps no session state, so
// nothing needs to be sent.
func (c *Client) Logout(ctx context.Context) error {
	c.accessToken = ""
	return nil
}

func (c *Client) Me(ctx context.Context) (*api.User, error) {
	var user api.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, patch api.UpdateProfileRequest) (*api.User, error) {
	var user api.User
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	req := api.ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	return c.do(ctx, http.MethodPut, "/api/auth/password", req, nil)
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/auth/account", nil, nil); err != nil {
		return err
	}
	c.accessToken = ""
	return nil
}

func (c *Client) ListTasks(ctx context.Context, filter api.Filter) ([]api.Task, error) {
	var tasks []api.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks"+filterQuery(filter), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func filterQuery(filter api.Filter) string {
	q := url.Values{}
	for key, value := range map[string]string{
		"status":   filter.Status,
		"priority": filter.Priority,
		"search":   filter.Search,
		"sort":     filter.Sort,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.Task, error) {
	var task api.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*api.Task, error) {
	var task api.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+id, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch api.UpdateTaskRequest) (*api.Task, error) {
	var task api.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

func (c *Client) TaskStats(ctx context.Context) (api.Stats, error) {
	var stats api.Stats
	if err := c.do(ctx, http.MethodGet, "/api/tasks/stats", nil, &stats); err != nil {
		return api.Stats{}, err
	}
	return stats, nil
}

// Ping probes the server's health endpoint with a short deadline. Any
// failure, including a non-OK status, reports common.ErrUnavailable.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+common.HealthCheckPath, nil)
	if err != nil {
		return common.ErrUnavailable
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return common.ErrUnavailable
	}
	return nil
}
