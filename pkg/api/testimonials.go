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

// TestimonialsClient wraps the platform testimonial endpoints,
// including the admin moderation surface.
type TestimonialsClient struct {
	c *Client
}

// Create files a new testimonial for moderation.
func (t *TestimonialsClient) Create(ctx context.Context, in TestimonialInput) (*StatusMessage, error) {
	var out StatusMessage
	if err := t.c.sendJSON(ctx, http.MethodPost, "/testimonios", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Featured returns the highlighted testimonials for the landing view.
func (t *TestimonialsClient) Featured(ctx context.Context, limit int) ([]Testimonial, error) {
	return t.list(ctx, "/testimonios/destacados", limit)
}

// Approved returns all approved testimonials.
func (t *TestimonialsClient) Approved(ctx context.Context, limit int) ([]Testimonial, error) {
	return t.list(ctx, "/testimonios/aprobados", limit)
}

// Pending returns testimonials awaiting moderation. Admin only.
func (t *TestimonialsClient) Pending(ctx context.Context) ([]Testimonial, error) {
	var out []Testimonial
	if err := t.c.getJSON(ctx, "/testimonios/pendientes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Approve publishes a pending testimonial. Admin only.
func (t *TestimonialsClient) Approve(ctx context.Context, id int) error {
	return t.c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/testimonios/%d/aprobar", id), nil, nil)
}

// SetFeatured toggles the featured flag. Admin only.
func (t *TestimonialsClient) SetFeatured(ctx context.Context, id int, featured bool) error {
	q := url.Values{"destacado": {strconv.FormatBool(featured)}}
	path := fmt.Sprintf("/testimonios/%d/destacar", id)
	return t.c.do(ctx, http.MethodPut, path, q, nil, "", nil)
}

// Delete removes a testimonial.
func (t *TestimonialsClient) Delete(ctx context.Context, id int) error {
	return t.c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/testimonios/%d", id), nil, nil)
}

func (t *TestimonialsClient) list(ctx context.Context, path string, limit int) ([]Testimonial, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []Testimonial
	if err := t.c.getJSON(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
