// Package client talks to the planner REST API. Client implements the layoutsync
// Store and GuestDirectory interfaces, so a Synchronizer can run against a remote
// server exactly as it runs against the database.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"boda-backend/layoutsync"
	"boda-backend/models"
	"boda-backend/seating"
)

const DefaultTimeout = 15 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status code onto the sentinel the caller checks.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return layoutsync.ErrNoLayout
	case e.StatusCode == http.StatusBadRequest:
		return seating.ErrInvalidLayout
	case e.StatusCode == http.StatusUnprocessableEntity:
		return seating.ErrCapacityExceeded
	case e.StatusCode >= 500:
		return layoutsync.ErrStoreUnavailable
	}
	return nil
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

func (c *Client) WithTimeout(d time.Duration) *Client {
	c.httpClient.Timeout = d
	return c
}

type layoutBody struct {
	Espacios seating.Grid `json:"espacios"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", layoutsync.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var eb struct {
			Message string `json:"message"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &eb) == nil && eb.Message != "" {
			msg = eb.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", layoutsync.ErrStoreUnavailable, method, path, err)
	}
	return nil
}

func (c *Client) Latest(ctx context.Context) (*seating.Layout, error) {
	var l seating.Layout
	if err := c.do(ctx, http.MethodGet, "/api/layout", nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) Create(ctx context.Context, espacios seating.Grid) (*seating.Layout, error) {
	var l seating.Layout
	if err := c.do(ctx, http.MethodPost, "/api/layout", layoutBody{Espacios: espacios}, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) Replace(ctx context.Context, id uint, espacios seating.Grid) (*seating.Layout, error) {
	var l seating.Layout
	path := "/api/layout/" + strconv.FormatUint(uint64(id), 10)
	if err := c.do(ctx, http.MethodPut, path, layoutBody{Espacios: espacios}, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) Guests(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := c.do(ctx, http.MethodGet, "/api/invitados", nil, &guests); err != nil {
		return nil, err
	}
	return guests, nil
}

func (c *Client) Parties(ctx context.Context) ([]seating.Party, error) {
	guests, err := c.Guests(ctx)
	if err != nil {
		return nil, fmt.Errorf("load guests: %w", err)
	}
	return models.GuestsToParties(guests), nil
}

// Health pings /health.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return errors.New("unexpected health status " + strconv.Quote(out.Status))
	}
	return nil
}

var (
	_ layoutsync.Store          = (*Client)(nil)
	_ layoutsync.GuestDirectory = (*Client)(nil)
)
