// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package realtime

import (
	"math/rand"
	"time"
)

// Backoff computes reconnect delays: exponential growth from Base by
// Factor, capped at Cap, with optional jitter to avoid thundering
// herds when many clients lose the broker at once.
type Backoff struct {
	// Base is the delay before the first retry. Default 1s.
	Base time.Duration

	// Cap bounds the delay. Default 30s.
	Cap time.Duration

	// Factor multiplies the delay per attempt. Default 2.
	Factor float64

	// Jitter, when true, randomizes each delay in [delay/2, delay].
	Jitter bool
}

// DefaultBackoff is the reconnect policy used by Channel unless
// overridden.
func DefaultBackoff() Backoff {
	return Backoff{
		Base:   time.Second,
		Cap:    30 * time.Second,
		Factor: 2,
		Jitter: true,
	}
}

// Delay returns the wait before retry number attempt (0-based).
func (b Backoff) Delay(attempt int) time.Duration {
	base := b.Base
	if base <= 0 {
		base = time.Second
	}
	capD := b.Cap
	if capD <= 0 {
		capD = 30 * time.Second
	}
	factor := b.Factor
	if factor < 1 {
		factor = 2
	}

	d := float64(base)
	for i := 0; i < attempt; i++ {
		d *= factor
		if time.Duration(d) >= capD {
			d = float64(capD)
			break
		}
	}
	delay := time.Duration(d)
	if delay > capD {
		delay = capD
	}
	if b.Jitter {
		half := delay / 2
		delay = half + time.Duration(rand.Int63n(int64(half)+1))
	}
	return delay
}
