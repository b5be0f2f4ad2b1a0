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

// RatingsClient wraps the co-traveler rating endpoints. Ratings open
// once a trip is closed; each member scores the others 1-5 with an
// optional comment.
type RatingsClient struct {
	c *Client
}

// Pending fetches the rating sheet for a finished group: the group
// header, how many co-travelers the user already rated, and who is
// still unrated.
func (r *RatingsClient) Pending(ctx context.Context, groupID int) (*PendingRatings, error) {
	var out PendingRatings
	if err := r.c.getJSON(ctx, fmt.Sprintf("/calificaciones/grupo/%d", groupID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Submit files the given ratings for the group in one batch.
func (r *RatingsClient) Submit(ctx context.Context, groupID int, ratings []RatingInput) (*StatusMessage, error) {
	payload := ratingBatch{GroupID: groupID, Ratings: ratings}
	var out StatusMessage
	if err := r.c.sendJSON(ctx, http.MethodPost, "/calificaciones/calificar", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ratingBatch struct {
	GroupID int           `json:"idGrupo"`
	Ratings []RatingInput `json:"calificaciones"`
}
