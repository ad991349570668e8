package client

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
	"time"

	m "guest_list_services/src/models"
)

const DefaultBaseURL = "http://localhost:4000"

// Client talks to the guest API. Every call is a single round trip: no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for baseURL. A nil httpClient gets one with a 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListGuests(ctx context.Context) ([]m.Guest, error) {
	var guests []m.Guest
	if err := c.do(ctx, "list guests", http.MethodGet, "/guests", nil, &guests); err != nil {
		return nil, err
	}
	if guests == nil {
		guests = []m.Guest{}
	}
	return guests, nil
}

func (c *Client) GetGuest(ctx context.Context, id string) (m.Guest, error) {
	var guest m.Guest
	err := c.do(ctx, "get guest", http.MethodGet, guestPath(id), nil, &guest)
	return guest, err
}

func (c *Client) CreateGuest(ctx context.Context, guest m.Guest) (m.Guest, error) {
	var created m.Guest
	err := c.do(ctx, "create guest", http.MethodPost, "/guests", guest, &created)
	return created, err
}

// UpdateGuest sends the full record to /guests/{id}.
func (c *Client) UpdateGuest(ctx context.Context, guest m.Guest) (m.Guest, error) {
	var updated m.Guest
	err := c.do(ctx, "update guest", http.MethodPut, guestPath(guest.ID), guest, &updated)
	return updated, err
}

func (c *Client) DeleteGuest(ctx context.Context, id string) error {
	return c.do(ctx, "delete guest", http.MethodDelete, guestPath(id), nil, nil)
}

func (c *Client) SearchGuests(ctx context.Context, lookup string) ([]m.Search, error) {
	var results []m.Search
	path := "/guests/search?lookup=" + url.QueryEscape(lookup)
	if err := c.do(ctx, "search guests", http.MethodGet, path, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) ExportGuests(ctx context.Context) (m.ExportReceipt, error) {
	var receipt m.ExportReceipt
	err := c.do(ctx, "export guests", http.MethodPost, "/guests/export", nil, &receipt)
	return receipt, err
}

func guestPath(id string) string {
	return "/guests/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, op string, method string, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Kind: KindTransport, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		kind := KindTransport
		if errors.Is(err, context.Canceled) {
			kind = KindCanceled
		}
		return &Error{Op: op, Kind: kind, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &Error{Op: op, Kind: KindStatus, StatusCode: res.StatusCode, Message: readErrorMessage(res.Body)}
	}

	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		kind := KindDecode
		if errors.Is(err, context.Canceled) {
			kind = KindCanceled
		}
		return &Error{Op: op, Kind: kind, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// readErrorMessage pulls the JSON string error body the API answers with.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}

	var message string
	if err := json.Unmarshal(raw, &message); err == nil {
		return message
	}
	return strings.TrimSpace(string(raw))
}
