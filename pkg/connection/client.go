package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dimitrije/flowdesk-api/pkg/dto"
	"github.com/google/uuid"
)

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("app connections api returned %d: %s", e.StatusCode, e.Body)
}

// Client talks to the /app-connections endpoints with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

func (c *Client) List(ctx context.Context) ([]dto.AppConnectionResponse, error) {
	var resp dto.AppConnectionListResponse
	if err := c.do(ctx, http.MethodGet, "/app-connections", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Snapshot lists the current connections once and freezes their names.
func (c *Client) Snapshot(ctx context.Context, exclude string) (*NameSnapshot, error) {
	conns, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(conns))
	for i, conn := range conns {
		names[i] = conn.Name
	}
	return NewNameSnapshot(names, exclude), nil
}

func (c *Client) Upsert(ctx context.Context, req dto.UpsertAppConnectionRequest) (*dto.AppConnectionResponse, error) {
	var resp dto.AppConnectionResponse
	if err := c.do(ctx, http.MethodPost, "/app-connections", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Submit validates the form against snapshot and upserts it. Nothing is sent
// when validation fails.
func (c *Client) Submit(ctx context.Context, form *SecretTextForm, snapshot *NameSnapshot, projectID uuid.UUID) (*dto.AppConnectionResponse, error) {
	if err := form.Validate(snapshot); err != nil {
		return nil, err
	}
	return c.Upsert(ctx, form.Request(projectID))
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
