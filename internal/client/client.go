// Package client talks to the taskdeck HTTP API. It implements the auth
// backend the session container drives and the CRUD calls the syncer pushes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"taskdeck/internal/model"
	"taskdeck/internal/store"
)

// Client is a thin typed wrapper over the HTTP API. It keeps the bearer
// token from the last successful sign-in and reports session changes to a
// registered listener.
type Client struct {
	baseURL string
	http    *http.Client

	mu        sync.Mutex
	token     string
	onSession func(*store.Session)
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// OnSessionChange registers the session listener and immediately reports the
// current (absent) session so the auth container leaves its loading state.
func (c *Client) OnSessionChange(fn func(*store.Session)) {
	c.mu.Lock()
	c.onSession = fn
	hasToken := c.token != ""
	c.mu.Unlock()
	if !hasToken {
		fn(nil)
	}
}

type sessionPayload struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// SignIn implements store.AuthBackend.
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// SignUp implements store.AuthBackend.
func (c *Client) SignUp(ctx context.Context, email, password, displayName string) error {
	return c.authenticate(ctx, "/auth/signup", map[string]string{
		"email":       email,
		"password":    password,
		"displayName": displayName,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body interface{}) error {
	var payload sessionPayload
	if err := c.do(ctx, http.MethodPost, path, body, &payload); err != nil {
		return err
	}

	c.mu.Lock()
	c.token = payload.Token
	fn := c.onSession
	c.mu.Unlock()

	if fn != nil && payload.User != nil {
		fn(&store.Session{
			UserID:      payload.User.ID,
			Email:       payload.User.Email,
			DisplayName: payload.User.DisplayName,
			Avatar:      payload.User.Avatar,
		})
	}
	return nil
}

// SignOut implements store.AuthBackend.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}

	c.mu.Lock()
	c.token = ""
	fn := c.onSession
	c.mu.Unlock()

	if fn != nil {
		fn(nil)
	}
	return nil
}

// UpdateProfile implements store.AuthBackend. Only the fields the caller set
// go on the wire; the server merges and leaves the rest untouched.
func (c *Client) UpdateProfile(ctx context.Context, update store.ProfileUpdate) (*model.User, error) {
	body := map[string]string{}
	if update.DisplayName != "" {
		body["displayName"] = update.DisplayName
	}
	if update.Email != "" {
		body["email"] = update.Email
	}
	if update.Avatar != "" {
		body["avatar"] = update.Avatar
	}
	var user model.User
	if err := c.do(ctx, http.MethodPut, "/profile", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, category model.Category) error {
	body := map[string]string{
		"id":    category.ID,
		"name":  category.Name,
		"color": category.Color,
	}
	return c.do(ctx, http.MethodPost, "/categories", body, nil)
}

func (c *Client) UpdateCategory(ctx context.Context, category model.Category) error {
	body := map[string]string{
		"name":  category.Name,
		"color": category.Color,
	}
	return c.do(ctx, http.MethodPut, "/categories/"+category.ID, body, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+id, nil, nil)
}

// taskBody is the wire shape shared by task create and update calls.
type taskBody struct {
	ID           string         `json:"id,omitempty"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	DueDate      *time.Time     `json:"dueDate,omitempty"`
	ClearDueDate bool           `json:"clearDueDate,omitempty"`
	Priority     model.Priority `json:"priority,omitempty"`
	Completed    *bool          `json:"completed,omitempty"`
	Notes        string         `json:"notes"`
	CategoryID   string         `json:"categoryId"`
}

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, task model.Task) error {
	body := taskBody{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    task.Priority,
		Notes:       task.Notes,
		CategoryID:  task.CategoryID,
	}
	return c.do(ctx, http.MethodPost, "/tasks", body, nil)
}

func (c *Client) UpdateTask(ctx context.Context, task model.Task) error {
	completed := task.Completed
	body := taskBody{
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    task.Priority,
		Completed:   &completed,
		Notes:       task.Notes,
		CategoryID:  task.CategoryID,
	}
	// The update is a full snapshot: an absent local due date means the
	// server's copy must be cleared, not left as is.
	if task.DueDate == nil {
		body.ClearDueDate = true
	}
	return c.do(ctx, http.MethodPut, "/tasks/"+task.ID, body, nil)
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		if json.NewDecoder(resp.Body).Decode(&payload) == nil && payload.Error != "" {
			return fmt.Errorf("%s", payload.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
