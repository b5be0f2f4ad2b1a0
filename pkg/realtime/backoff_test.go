// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffSchedule(t *testing.T) {
	b := Backoff{Base: time.Second, Cap: 30 * time.Second, Factor: 2}

	want := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}
	for attempt, expected := range want {
		assert.Equal(t, expected, b.Delay(attempt), "attempt %d", attempt)
	}
}

func TestBackoffJitterBounds(t *testing.T) {
	b := DefaultBackoff()

	for attempt := 0; attempt < 8; attempt++ {
		full := Backoff{Base: b.Base, Cap: b.Cap, Factor: b.Factor}.Delay(attempt)
		for i := 0; i < 50; i++ {
			d := b.Delay(attempt)
			assert.GreaterOrEqual(t, d, full/2, "attempt %d", attempt)
			assert.LessOrEqual(t, d, full, "attempt %d", attempt)
		}
	}
}

func TestBackoffNegativeAttempt(t *testing.T) {
	b := Backoff{Base: time.Second, Cap: 30 * time.Second, Factor: 2}
	assert.Equal(t, time.Second, b.Delay(-3))
}
