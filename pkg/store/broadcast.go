// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package store provides a small observable value container shared across
// views.
//
// A Broadcast holds the latest value of some piece of shared state (home
// data, session user, realtime connection state) and fans it out to any
// number of subscribers. By convention there is a single writer per store:
// the component that issues the authoritative fetch. Everyone else
// subscribes and treats the value as read-only.
//
// # Thread Safety
//
// Broadcast is safe for concurrent use. Subscriber channels are buffered;
// when a subscriber falls behind, intermediate values are dropped rather
// than blocking the writer.
package store

import "sync"

// subscriberBuffer is the per-subscriber channel capacity.
const subscriberBuffer = 16

// Broadcast is an observable container for a single value of type T.
//
// New subscribers immediately receive the current value, if one has been
// set. The zero value is ready to use.
type Broadcast[T any] struct {
	mu     sync.Mutex
	value  T
	hasVal bool
	nextID int
	subs   map[int]chan T
}

// NewBroadcast returns an empty Broadcast.
func NewBroadcast[T any]() *Broadcast[T] {
	return &Broadcast[T]{subs: make(map[int]chan T)}
}

// Get returns the current value and whether one has been set.
func (b *Broadcast[T]) Get() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value, b.hasVal
}

// Set stores v as the current value and publishes it to all subscribers.
func (b *Broadcast[T]) Set(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = v
	b.hasVal = true
	for _, ch := range b.subs {
		select {
		case ch <- v:
		default: // slow subscriber, drop
		}
	}
}

// Subscribe registers a new subscriber and returns its stream along with a
// cancel function. The current value, if any, is replayed onto the stream
// before Subscribe returns. Cancel closes the stream and must be called to
// release the subscription.
func (b *Broadcast[T]) Subscribe() (<-chan T, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]chan T)
	}
	id := b.nextID
	b.nextID++
	ch := make(chan T, subscriberBuffer)
	if b.hasVal {
		ch <- b.value
	}
	b.subs[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Len reports the number of active subscribers. Intended for tests and
// teardown diagnostics.
func (b *Broadcast[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
