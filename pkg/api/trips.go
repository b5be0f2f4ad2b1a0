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

// TripsClient wraps the "my trips" view: the caller's groups bucketed
// into created, joined and closed.
type TripsClient struct {
	c *Client
}

// MyTrips returns the caller's groups.
func (t *TripsClient) MyTrips(ctx context.Context) (*MyTrips, error) {
	var out MyTrips
	if err := t.c.getJSON(ctx, "/mis-viajes", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Leave abandons a joined group from the trips view.
func (t *TripsClient) Leave(ctx context.Context, groupID int) (*StatusMessage, error) {
	var out StatusMessage
	if err := t.c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/grupos/%d/abandonar", groupID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a created group from the trips view.
func (t *TripsClient) Delete(ctx context.Context, groupID int) error {
	return t.c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/grupos/%d", groupID), nil, nil)
}
