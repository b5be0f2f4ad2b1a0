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
	"net/url"
	"strconv"
)

// GroupsClient wraps the group lifecycle and membership endpoints.
type GroupsClient struct {
	c *Client
}

// Filters narrows a group search. Zero fields are omitted from the
// query string.
type Filters struct {
	Destination string
	StartDate   string
	EndDate     string
	Sort        string
	Page        int
	Size        int
}

func (f Filters) query() url.Values {
	q := url.Values{}
	if f.Destination != "" {
		q.Set("destinoPrincipal", f.Destination)
	}
	if f.StartDate != "" {
		q.Set("fechaInicio", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("fechaFin", f.EndDate)
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Size > 0 {
		q.Set("size", strconv.Itoa(f.Size))
	}
	return q
}

// Search returns one page of groups matching the filters.
func (g *GroupsClient) Search(ctx context.Context, f Filters) (*GroupsPage, error) {
	var out GroupsPage
	if err := g.c.getJSON(ctx, "/grupos", f.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Detail returns the full view of one group.
func (g *GroupsClient) Detail(ctx context.Context, id int) (*GroupDetail, error) {
	var out GroupDetail
	if err := g.c.getJSON(ctx, fmt.Sprintf("/grupos/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Permissions returns what the current user may do in the group.
func (g *GroupsClient) Permissions(ctx context.Context, id int) (*Permissions, error) {
	var out Permissions
	if err := g.c.getJSON(ctx, fmt.Sprintf("/grupos/%d/permisos", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create opens a new group from the wizard payload.
func (g *GroupsClient) Create(ctx context.Context, payload GroupPayload) (*StatusMessage, error) {
	var out StatusMessage
	if err := g.c.sendJSON(ctx, http.MethodPost, "/grupos", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update rewrites an existing group from the wizard payload.
func (g *GroupsClient) Update(ctx context.Context, id int, payload GroupPayload) (*StatusMessage, error) {
	var out StatusMessage
	if err := g.c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/grupos/%d", id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Join files a membership request for the group.
func (g *GroupsClient) Join(ctx context.Context, id int) (*StatusMessage, error) {
	return g.action(ctx, id, "unirse")
}

// Leave abandons the group.
func (g *GroupsClient) Leave(ctx context.Context, id int) (*StatusMessage, error) {
	return g.action(ctx, id, "abandonar")
}

// Close closes the group to new members.
func (g *GroupsClient) Close(ctx context.Context, id int) (*StatusMessage, error) {
	return g.action(ctx, id, "cerrar")
}

// Delete removes the group entirely.
func (g *GroupsClient) Delete(ctx context.Context, id int) error {
	return g.c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/grupos/%d", id), nil, nil)
}

func (g *GroupsClient) action(ctx context.Context, id int, verb string) (*StatusMessage, error) {
	var out StatusMessage
	if err := g.c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/grupos/%d/%s", id, verb), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
