// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"context"
	"net/http"
	"net/url"
)

// AuthClient wraps the identity endpoints. Login and Register return
// the token and user record; persisting them is the session store's
// job, not this client's.
type AuthClient struct {
	c *Client
}

// Login exchanges credentials for a token.
func (a *AuthClient) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.c.sendJSON(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and logs it in.
func (a *AuthClient) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.c.sendJSON(ctx, http.MethodPost, "/auth/register", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckUsername reports whether a username is still free.
func (a *AuthClient) CheckUsername(ctx context.Context, username string) (bool, error) {
	var out Availability
	q := url.Values{"username": {username}}
	if err := a.c.getJSON(ctx, "/auth/check-username", q, &out); err != nil {
		return false, err
	}
	return out.Available, nil
}

// CheckEmail reports whether an email is still free.
func (a *AuthClient) CheckEmail(ctx context.Context, email string) (bool, error) {
	var out Availability
	q := url.Values{"email": {email}}
	if err := a.c.getJSON(ctx, "/auth/check-email", q, &out); err != nil {
		return false, err
	}
	return out.Available, nil
}
