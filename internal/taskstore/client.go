package taskstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/julianstephens/nudge/internal/constants"
	apperrors "github.com/julianstephens/nudge/internal/errors"
	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/models"
)

// ErrUnauthorized is returned when the API rejects the bearer token.
var ErrUnauthorized = errors.New("not authorized, run 'nudge login'")

// TaskPayload is the body of create and update requests. Nil fields are
// omitted, so an update only changes what is set.
type TaskPayload struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Deadline *string `json:"deadline,omitempty"`
}

// Client talks to the task API over HTTP with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithToken(token string) Option {
	return func(cl *Client) { cl.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: constants.RequestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) HasToken() bool {
	return c.token != ""
}

// rawTask accepts both the _id/id and name/title spellings of a task record.
type rawTask struct {
	MongoID  string  `json:"_id"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Deadline *string `json:"deadline"`
}

func (r rawTask) normalize() (models.Task, error) {
	t := models.Task{
		ID:       r.MongoID,
		Name:     r.Name,
		Category: r.Category,
	}
	if t.ID == "" {
		t.ID = r.ID
	}
	if t.Name == "" {
		t.Name = r.Title
	}
	if t.ID == "" {
		return models.Task{}, fmt.Errorf("task record has no id")
	}
	if strings.TrimSpace(t.Name) == "" {
		return models.Task{}, fmt.Errorf("task %s has no name", t.ID)
	}
	if r.Deadline != nil && strings.TrimSpace(*r.Deadline) != "" {
		d, err := models.ParseTimeOfDay(*r.Deadline)
		if err != nil {
			return models.Task{}, fmt.Errorf("task %s: %w", t.ID, err)
		}
		t.Deadline = &d
	}
	return t, nil
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", apperrors.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil {
			if apiErr.Message != "" {
				msg = apiErr.Message
			} else if apiErr.Error != "" {
				msg = apiErr.Error
			}
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w (%s)", apperrors.ErrTransport, ErrUnauthorized, msg)
		}
		return fmt.Errorf("%w: %s %s returned %d: %s", apperrors.ErrTransport, method, path, resp.StatusCode, msg)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", apperrors.ErrTransport, err)
	}
	return nil
}

// List fetches the caller's tasks. Records that cannot be normalized are
// skipped and logged.
func (c *Client) List(ctx context.Context) ([]models.Task, error) {
	var raw []rawTask
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &raw); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(raw))
	for _, r := range raw {
		t, err := r.normalize()
		if err != nil {
			logger.Warn("Skipping invalid task record", "error", err)
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Create adds a task and returns it as stored by the API.
func (c *Client) Create(ctx context.Context, payload TaskPayload) (models.Task, error) {
	var raw rawTask
	if err := c.do(ctx, http.MethodPost, "/tasks", payload, &raw); err != nil {
		return models.Task{}, err
	}
	t, err := raw.normalize()
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: invalid task in response: %v", apperrors.ErrTransport, err)
	}
	return t, nil
}

// Update changes the set fields of a task and returns the result.
func (c *Client) Update(ctx context.Context, id string, payload TaskPayload) (models.Task, error) {
	var raw rawTask
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), payload, &raw); err != nil {
		return models.Task{}, err
	}
	t, err := raw.normalize()
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: invalid task in response: %v", apperrors.ErrTransport, err)
	}
	return t, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, username, email, password string) (string, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/users/register", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: register response has no token", apperrors.ErrTransport)
	}
	return resp.Token, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: login response has no token", apperrors.ErrTransport)
	}
	return resp.Token, nil
}

// Logout ends the current session on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/users/logout", nil, nil)
}

// NewPayload builds a create payload, applying the default category.
func NewPayload(name, category, deadline string) TaskPayload {
	if category == "" {
		category = constants.DefaultCategory
	}
	p := TaskPayload{Name: &name, Category: &category}
	if deadline != "" {
		p.Deadline = &deadline
	}
	return p
}
