// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"context"

	"github.com/rumbo-travel/rumbo/pkg/store"
)

// HomeClient serves the shared home/session display data.
//
// Fetch updates a broadcast store so that every view sees the same
// data without re-fetching; the component that calls Fetch (or
// Refresh) is the single writer, everyone else subscribes.
type HomeClient struct {
	c    *Client
	data *store.Broadcast[*HomeData]
}

func newHomeClient(c *Client) *HomeClient {
	c.homeOnce.Do(func() {
		c.homeData = store.NewBroadcast[*HomeData]()
	})
	return &HomeClient{c: c, data: c.homeData}
}

// Fetch loads the home payload and publishes it to the shared store.
func (h *HomeClient) Fetch(ctx context.Context) (*HomeData, error) {
	var out HomeData
	if err := h.c.getJSON(ctx, "/home", nil, &out); err != nil {
		return nil, err
	}
	h.data.Set(&out)
	return &out, nil
}

// Refresh forces a re-fetch, ignoring the result beyond publication.
func (h *HomeClient) Refresh(ctx context.Context) error {
	_, err := h.Fetch(ctx)
	return err
}

// Data exposes the shared home store for subscription.
func (h *HomeClient) Data() *store.Broadcast[*HomeData] { return h.data }
