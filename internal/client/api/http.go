package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inkwell-journal/inkwell/internal/common"
	"github.com/inkwell-journal/inkwell/internal/syncapi"
)

const defaultTimeout = 15 * time.Second

// HTTPClient talks JSON over HTTP to the Inkwell server.
// Request timeouts are owned by the underlying http.Client; a timed-out sync
// call surfaces to callers as a generic call failure.
type HTTPClient struct {
	baseURL     string
	hc          *http.Client
	accessToken string
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: defaultTimeout},
	}
}

// SetToken installs a bearer token obtained out of band (e.g. a saved session).
func (c *HTTPClient) SetToken(token string) {
	c.accessToken = token
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.accessToken)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	case resp.StatusCode >= 400:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request failed: %s: %s", resp.Status, bytes.TrimSpace(msg))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	req := syncapi.RegisterRequest{Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", req, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	req := syncapi.LoginRequest{Email: email, Password: password}
	var resp syncapi.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return err
	}
	c.accessToken = resp.AccessToken
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

func (c *HTTPClient) Sync(ctx context.Context, req syncapi.SyncRequest) (*syncapi.SyncResponse, error) {
	var resp syncapi.SyncResponse
	if err := c.do(ctx, http.MethodPost, "/api/sync", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) DeleteEntry(ctx context.Context, serverID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/entries/%d", serverID), nil, nil)
}
