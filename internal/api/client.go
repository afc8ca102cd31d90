package api

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
	"sync"
	"time"

	"golang.org/x/oauth2"

	"taskdesk/internal/model"
)

const (
	pathLogin          = "/api/auth/login"
	pathRegister       = "/api/auth/register"
	pathProfile        = "/api/auth/profile"
	pathTasks          = "/api/tasks"
	pathUsers          = "/api/users"
	pathExportTasks    = "/api/reports/export/tasks"
	pathExportUsers    = "/api/reports/export/users"
	spreadsheetMIME    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	tasksReportName    = "task_details.xlsx"
	usersReportName    = "user_details.xlsx"
	maxErrorBodyLength = 4096
)

// TokenGetter reads the stored credential token.
type TokenGetter interface {
	Get(ctx context.Context) (string, error)
}

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL *url.URL
	anon    *http.Client
	authed  *http.Client

	mu             sync.RWMutex
	onUnauthorized func()
}

var _ Service = (*Client)(nil)

// NewClient builds a client for the external system at baseURL. Requests
// that need a session carry the stored token as a bearer credential. A zero
// timeout means none.
func NewClient(baseURL string, tokens TokenGetter, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}

	return &Client{
		baseURL: u,
		anon:    &http.Client{Timeout: timeout},
		authed: &http.Client{
			Timeout: timeout,
			Transport: &oauth2.Transport{
				Source: storeSource{tokens: tokens},
				Base:   http.DefaultTransport,
			},
		},
	}, nil
}

// OnUnauthorized registers fn to run whenever an authenticated call is
// answered with 401.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// storeSource hands the stored token to oauth2.Transport on every request,
// so login and logout take effect immediately.
type storeSource struct {
	tokens TokenGetter
}

func (s storeSource) Token() (*oauth2.Token, error) {
	token, err := s.tokens.Get(context.Background())
	if err != nil {
		return nil, fmt.Errorf("read stored credential: %w", err)
	}
	if token == "" {
		return nil, ErrNoCredential
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

type authResponse struct {
	model.User
	Token string `json:"token"`
}

func (c *Client) ResolveSession(ctx context.Context) (*model.User, error) {
	var user model.User
	err := c.do(ctx, c.authed, http.MethodGet, pathProfile, nil, nil, &user)
	if errors.Is(err, ErrNoCredential) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, c.anon, http.MethodPost, pathLogin, nil, creds, &resp); err != nil {
		return model.AuthResult{}, err
	}
	return model.AuthResult{Token: resp.Token, Identity: resp.User}, nil
}

func (c *Client) Register(ctx context.Context, profile model.Profile) (model.AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, c.anon, http.MethodPost, pathRegister, nil, profile, &resp); err != nil {
		return model.AuthResult{}, err
	}
	return model.AuthResult{Token: resp.Token, Identity: resp.User}, nil
}

func (c *Client) ListTasks(ctx context.Context, filter model.Filter) (model.TaskPage, error) {
	var page model.TaskPage
	query := url.Values{"status": {filter.QueryValue()}}
	err := c.do(ctx, c.authed, http.MethodGet, pathTasks, query, nil, &page)
	return page, err
}

func (c *Client) GetTask(ctx context.Context, id string) (model.Task, error) {
	var t model.Task
	err := c.do(ctx, c.authed, http.MethodGet, taskPath(id), nil, nil, &t)
	return t, err
}

func (c *Client) CreateTask(ctx context.Context, in model.TaskInput) (model.Task, error) {
	var resp taskEnvelope
	err := c.do(ctx, c.authed, http.MethodPost, pathTasks, nil, in, &resp)
	return resp.task(), err
}

func (c *Client) UpdateTask(ctx context.Context, id string, in model.TaskInput) (model.Task, error) {
	var resp taskEnvelope
	err := c.do(ctx, c.authed, http.MethodPut, taskPath(id), nil, in, &resp)
	return resp.task(), err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, c.authed, http.MethodDelete, taskPath(id), nil, nil, nil)
}

func (c *Client) UpdateChecklist(ctx context.Context, id string, checklist []model.ChecklistItem) (model.Task, error) {
	var resp taskEnvelope
	body := map[string]any{"todoChecklist": checklist}
	err := c.do(ctx, c.authed, http.MethodPut, taskPath(id)+"/todo", nil, body, &resp)
	return resp.task(), err
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := c.do(ctx, c.authed, http.MethodGet, pathUsers, nil, nil, &users)
	return users, err
}

func (c *Client) ExportTasksReport(ctx context.Context) (model.Report, error) {
	return c.download(ctx, pathExportTasks, tasksReportName)
}

func (c *Client) ExportUsersReport(ctx context.Context) (model.Report, error) {
	return c.download(ctx, pathExportUsers, usersReportName)
}

// taskEnvelope accepts both a bare task and {"message": ..., "task": {...}}.
type taskEnvelope struct {
	model.Task
	Wrapped *model.Task `json:"task"`
}

func (e taskEnvelope) task() model.Task {
	if e.Wrapped != nil {
		return *e.Wrapped
	}
	return e.Task
}

func taskPath(id string) string {
	return pathTasks + "/" + id
}

func (c *Client) download(ctx context.Context, path, filename string) (model.Report, error) {
	resp, err := c.send(ctx, c.authed, http.MethodGet, path, nil, nil)
	if err != nil {
		return model.Report{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Report{}, fmt.Errorf("read %s: %w", path, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = spreadsheetMIME
	}
	return model.Report{Filename: filename, ContentType: contentType, Data: data}, nil
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, query url.Values, body, out any) error {
	resp, err := c.send(ctx, hc, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, hc *http.Client, method, path string, query url.Values, body any) (*http.Response, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			return nil, ErrNoCredential
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if hc == c.authed {
			c.unauthorized()
			return nil, ErrUnauthorized
		}
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	return nil, &StatusError{Code: resp.StatusCode, Message: errorMessage(resp.Body)}
}

func (c *Client) unauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

func errorMessage(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBodyLength))
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(data))
}
