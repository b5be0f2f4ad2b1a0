// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"context"
	"fmt"
	"net/http"
)

// RequestsClient wraps the join-request moderation endpoints, used by
// group creators to accept or reject pending members.
type RequestsClient struct {
	c *Client
}

// Pending lists the group's pending join requests.
func (r *RequestsClient) Pending(ctx context.Context, groupID int) (*JoinRequestsPage, error) {
	var out JoinRequestsPage
	if err := r.c.getJSON(ctx, fmt.Sprintf("/grupos/%d/solicitudes-pendientes", groupID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Accept admits the requesting user into the group.
func (r *RequestsClient) Accept(ctx context.Context, groupID, userID int) (*StatusMessage, error) {
	return r.moderate(ctx, groupID, userID, "aceptar")
}

// Reject declines the request.
func (r *RequestsClient) Reject(ctx context.Context, groupID, userID int) (*StatusMessage, error) {
	return r.moderate(ctx, groupID, userID, "rechazar")
}

func (r *RequestsClient) moderate(ctx context.Context, groupID, userID int, verb string) (*StatusMessage, error) {
	var out StatusMessage
	path := fmt.Sprintf("/grupos/%d/solicitudes/%d/%s", groupID, userID, verb)
	if err := r.c.sendJSON(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
