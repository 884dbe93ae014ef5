/**
 * Copyright Ascensio System SIA 2026. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

// Package client is the thin HTTP transport under every DocSpace API call of
// the harness. It knows the response envelope and the session cookie header,
// nothing about the domain. A denied call (403, 400) is data for the caller
// to assert on, not an error: only transport and decoding failures error out.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/log"
)

// APIError is the error object of the DocSpace response envelope
type APIError struct {
	Message string `json:"message"`
}

// UnmarshalJSON tolerates both envelope shapes: the portal APIs send an
// error object, the registration service sends a bare string.
func (e *APIError) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &e.Message)
	}
	type plain APIError
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*e = APIError(p)
	return nil
}

// Result holds one completed API exchange: the transport status plus the
// decoded DocSpace envelope fields.
type Result struct {
	// Status is the HTTP status code of the exchange. Excluded from the
	// envelope decode since the envelope carries its own "status" field.
	Status int `json:"-"`

	// StatusCode is the envelope's own status field, usually mirrors Status
	StatusCode int `json:"statusCode"`

	// Response is the payload, left raw so callers decode into their own types
	Response json.RawMessage `json:"response"`

	// Error is filled by the server on denied or invalid requests
	Error *APIError `json:"error,omitempty"`

	// Body keeps the raw bytes for logging and non-envelope endpoints
	Body []byte `json:"-"`

	// Header gives access to response headers, needed for the auth cookie
	Header http.Header `json:"-"`
}

// OK reports whether the exchange completed with a 2xx status
func (r *Result) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// ErrorMessage returns the server-side error message or empty string
func (r *Result) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Message
}

// Decode unmarshals the envelope response payload into out
func (r *Result) Decode(out any) error {
	if len(r.Response) == 0 {
		return fmt.Errorf("response payload is empty (HTTP %d, error: %q)", r.Status, r.ErrorMessage())
	}
	if err := json.Unmarshal(r.Response, out); err != nil {
		return fmt.Errorf("unable to decode response payload: %w", err)
	}
	return nil
}

// Client issues JSON requests against one base URL with an optional session cookie
type Client struct {
	http    *http.Client
	baseURL string
	cookie  string
}

// Option adjusts the Client during construction
type Option func(*Client)

// WithTimeout bounds every request issued by the client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client, used in tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for the given base URL, for example
// "https://portal.example.com" or the bare registration endpoint.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCookie returns a copy of the client bound to a session cookie. The
// original stays untouched so one transport serves several identities.
func (c *Client) WithCookie(cookie string) *Client {
	bound := *c
	bound.cookie = cookie
	return &bound
}

// BaseURL returns the base URL the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET request to path under the base URL
func (c *Client) Get(ctx context.Context, path string) (*Result, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with the JSON-encoded body
func (c *Client) Post(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with the JSON-encoded body
func (c *Client) Put(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE request, body may be nil
func (c *Client) Delete(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, http.MethodDelete, path, body)
}

// Do performs the request and decodes the DocSpace envelope. The returned
// error covers transport and decoding only. Check Result.OK() for the
// server's verdict.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Result, error) {
	logger := log.WithFunc("client", "do").With("method", method, "path", path)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("unable to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("unable to build request %s %s: %w", method, url, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read response of %s %s: %w", method, url, err)
	}

	result := &Result{
		Status: resp.StatusCode,
		Body:   raw,
		Header: resp.Header,
	}

	// Some endpoints (portal reachability checks) return no envelope at all
	if len(raw) > 0 && raw[0] == '{' && json.Valid(raw) {
		if err := json.Unmarshal(raw, result); err != nil {
			return nil, fmt.Errorf("unable to decode envelope of %s %s: %w", method, url, err)
		}
	}

	logger.Debug("API exchange completed", "status", resp.StatusCode, "error", result.ErrorMessage())

	return result, nil
}
