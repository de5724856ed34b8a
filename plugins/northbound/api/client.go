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

	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

// Client talks to the northbound API of a running hostnetd.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s (status %d, request %s)", e.Message, e.StatusCode, e.RequestID)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func (c *Client) Hosts(ctx context.Context) ([]string, error) {
	var resp HostsResponse
	if err := c.do(ctx, http.MethodGet, "/api/hosts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Hosts, nil
}

func (c *Client) ResolveHost(ctx context.Context, host string) (*ResolveResponse, error) {
	var resp ResolveResponse
	if err := c.do(ctx, http.MethodGet, "/api/hosts/"+url.PathEscape(host)+"/resolve", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Resolve(ctx context.Context, snap *topology.Snapshot) (*ResolveResponse, error) {
	var resp ResolveResponse
	if err := c.do(ctx, http.MethodPost, "/api/resolve", snap, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Interfaces(ctx context.Context, host string) (*InterfacesResponse, error) {
	var resp InterfacesResponse
	if err := c.do(ctx, http.MethodGet, "/api/hosts/"+url.PathEscape(host)+"/interfaces", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PutHost stores a snapshot under its hostname.
func (c *Client) PutHost(ctx context.Context, snap *topology.Snapshot) error {
	return c.do(ctx, http.MethodPut, "/api/hosts/"+url.PathEscape(snap.Host.Hostname), snap, nil)
}

func (c *Client) DeleteHost(ctx context.Context, host string) error {
	return c.do(ctx, http.MethodDelete, "/api/hosts/"+url.PathEscape(host), nil, nil)
}

func (c *Client) Status(ctx context.Context) (*Status, error) {
	var resp Status
	if err := c.do(ctx, http.MethodGet, "/api/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error, RequestID: apiErr.RequestID}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
