// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package api provides the resource clients for the travel-group
// backend.
//
// One client exists per backend resource family (auth, home, groups,
// trips, chat, notifications, profile, join-requests, testimonials),
// all sharing a single Client for transport, auth and error mapping.
// Clients are stateless request/response wrappers: every method takes a
// context, performs one HTTP call, and returns a typed result.
//
// Responses are decoded into explicit schemas and shape-checked before
// they are returned; a body that does not match yields ErrBadResponse
// instead of propagating untyped data.
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

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rumbo-travel/rumbo/pkg/logging"
	"github.com/rumbo-travel/rumbo/pkg/store"
)

// uploadPrefix marks backend-hosted image paths.
const uploadPrefix = "/uploads/"

// defaultTimeout bounds a single request when the caller's context has
// no deadline of its own.
const defaultTimeout = 30 * time.Second

// TokenSource supplies the current bearer token. An empty token means
// the request goes out anonymous.
type TokenSource interface {
	Token() string
}

// Config assembles a Client.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.example.com/api".
	BaseURL string

	// AssetsURL is the static-asset root used to resolve image names.
	AssetsURL string

	// Tokens supplies the bearer token; nil means always anonymous.
	Tokens TokenSource

	// OnUnauthorized runs once per 401 response, before the error is
	// returned. Typically wired to session teardown.
	OnUnauthorized func()

	// HTTPClient overrides the default transport. Optional.
	HTTPClient *http.Client

	// Logger receives request diagnostics. Defaults to logging.Default().
	Logger *logging.Logger
}

// Client is the shared transport for all resource clients.
type Client struct {
	baseURL        string
	assetsURL      string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
	log            *logging.Logger
	validate       *validator.Validate

	homeOnce sync.Once
	homeData *store.Broadcast[*HomeData]
}

// New creates a Client. BaseURL is required.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Default()
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		assetsURL:      strings.TrimRight(cfg.AssetsURL, "/"),
		http:           httpClient,
		tokens:         cfg.Tokens,
		onUnauthorized: cfg.OnUnauthorized,
		log:            log,
		validate:       validator.New(),
	}, nil
}

// Resource client accessors. Each is a stateless view over the shared
// transport, so constructing them is free.

func (c *Client) Auth() *AuthClient                   { return &AuthClient{c} }
func (c *Client) Home() *HomeClient                   { return newHomeClient(c) }
func (c *Client) Groups() *GroupsClient               { return &GroupsClient{c} }
func (c *Client) Trips() *TripsClient                 { return &TripsClient{c} }
func (c *Client) Chat() *ChatClient                   { return &ChatClient{c} }
func (c *Client) Notifications() *NotificationsClient { return &NotificationsClient{c} }
func (c *Client) Profile() *ProfileClient             { return &ProfileClient{c} }
func (c *Client) Requests() *RequestsClient           { return &RequestsClient{c} }
func (c *Client) Ratings() *RatingsClient             { return &RatingsClient{c} }
func (c *Client) Testimonials() *TestimonialsClient   { return &TestimonialsClient{c} }

// ImageURL resolves a backend image reference to an absolute URL.
// Three shapes occur in responses: absolute URLs, paths already carrying
// the upload prefix, and bare filenames needing the assets root joined.
func (c *Client) ImageURL(ref string) string {
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		return ref
	case strings.HasPrefix(ref, uploadPrefix):
		return c.assetsURL + ref
	default:
		return c.assetsURL + uploadPrefix + ref
	}
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// sendJSON issues a JSON-bodied request and decodes the response into
// out (out may be nil when the body is irrelevant).
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		// Mutation endpoints expect a JSON body even when empty.
		body = strings.NewReader("{}")
	}
	return c.do(ctx, method, path, nil, body, "application/json", out)
}

// do performs a single HTTP round trip with auth, error mapping, and
// strict response decoding.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return c.decode(resp.Body, out)
}

// mapError turns a non-2xx response into *Error, firing the
// unauthorized hook on 401.
func (c *Client) mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var body StatusMessage
	msg := ""
	if json.Unmarshal(raw, &body) == nil {
		if body.Error != "" {
			msg = body.Error
		} else if body.Message != "" {
			msg = body.Message
		}
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	return &Error{Status: resp.StatusCode, Message: msg}
}

// decode parses a 2xx body into out and shape-checks it. A mismatch is
// reported as ErrBadResponse.
func (c *Client) decode(r io.Reader, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if err := c.check(out); err != nil {
		return err
	}
	return nil
}

// check validates a decoded value against its schema tags. Slices are
// validated element-wise.
func (c *Client) check(v any) error {
	switch val := v.(type) {
	case *[]ChatMessage:
		for i := range *val {
			if err := c.validate.Struct(&(*val)[i]); err != nil {
				return fmt.Errorf("%w: %v", ErrBadResponse, err)
			}
		}
		return nil
	case *[]Testimonial:
		for i := range *val {
			if err := c.validate.Struct(&(*val)[i]); err != nil {
				return fmt.Errorf("%w: %v", ErrBadResponse, err)
			}
		}
		return nil
	}
	if err := c.validate.Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			// Non-struct targets (e.g. maps) are not schema-checked.
			return nil
		}
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}
