// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"testing"

	"github.com/rumbo-travel/rumbo/pkg/api"
)

func TestBatchRatings(t *testing.T) {
	peers := []api.RatablePeer{
		{UserID: 3, FullName: "Ana Torres"},
		{UserID: 9, FullName: "Luis Vega"},
		{UserID: 12, FullName: "Marta Gil"},
	}
	scores := []int{5, 0, 3}
	comments := []string{"  excelente compañera  ", "no aplica", ""}

	got := batchRatings(peers, scores, comments)
	if len(got) != 2 {
		t.Fatalf("expected 2 ratings, got %d", len(got))
	}
	if got[0].UserID != 3 || got[0].Rating != 5 || got[0].Comment != "excelente compañera" {
		t.Errorf("first rating wrong: %+v", got[0])
	}
	if got[1].UserID != 12 || got[1].Rating != 3 || got[1].Comment != "" {
		t.Errorf("second rating wrong: %+v", got[1])
	}
}

func TestBatchRatings_AllSkipped(t *testing.T) {
	peers := []api.RatablePeer{{UserID: 3}, {UserID: 9}}
	if got := batchRatings(peers, []int{0, 0}, []string{"", ""}); got != nil {
		t.Errorf("expected no ratings, got %+v", got)
	}
}
