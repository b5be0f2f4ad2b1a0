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

// NotificationsClient wraps the notification inbox endpoints.
type NotificationsClient struct {
	c *Client
}

// List returns the full inbox.
func (n *NotificationsClient) List(ctx context.Context) (*NotificationsPage, error) {
	var out NotificationsPage
	if err := n.c.getJSON(ctx, "/notificaciones", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unread returns only unread notifications.
func (n *NotificationsClient) Unread(ctx context.Context) (*NotificationsPage, error) {
	var out NotificationsPage
	if err := n.c.getJSON(ctx, "/notificaciones/no-leidas", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UnreadCount returns the unread badge count.
func (n *NotificationsClient) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"contador"`
	}
	if err := n.c.getJSON(ctx, "/notificaciones/contador", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// MarkRead marks one notification as read.
func (n *NotificationsClient) MarkRead(ctx context.Context, id int) error {
	return n.c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/notificaciones/%d/leer", id), nil, nil)
}

// MarkAllRead marks the whole inbox as read.
func (n *NotificationsClient) MarkAllRead(ctx context.Context) error {
	return n.c.sendJSON(ctx, http.MethodPut, "/notificaciones/leer-todas", nil, nil)
}

// Delete removes one notification.
func (n *NotificationsClient) Delete(ctx context.Context, id int) error {
	return n.c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/notificaciones/%d", id), nil, nil)
}

// DeleteAll empties the inbox.
func (n *NotificationsClient) DeleteAll(ctx context.Context) error {
	return n.c.sendJSON(ctx, http.MethodDelete, "/notificaciones", nil, nil)
}
