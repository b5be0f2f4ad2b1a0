// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"sync"
	"testing"
)

func TestBroadcast_GetBeforeSet(t *testing.T) {
	b := NewBroadcast[int]()
	if _, ok := b.Get(); ok {
		t.Fatal("Get() reported a value before any Set")
	}
}

func TestBroadcast_SubscribeReplaysCurrent(t *testing.T) {
	b := NewBroadcast[string]()
	b.Set("hola")

	ch, cancel := b.Subscribe()
	defer cancel()

	select {
	case v := <-ch:
		if v != "hola" {
			t.Errorf("replayed value = %q, want %q", v, "hola")
		}
	default:
		t.Fatal("subscriber did not receive the current value on subscribe")
	}
}

func TestBroadcast_FanOut(t *testing.T) {
	b := NewBroadcast[int]()

	ch1, cancel1 := b.Subscribe()
	ch2, cancel2 := b.Subscribe()
	defer cancel1()
	defer cancel2()

	b.Set(42)

	for i, ch := range []<-chan int{ch1, ch2} {
		select {
		case v := <-ch:
			if v != 42 {
				t.Errorf("subscriber %d got %d, want 42", i, v)
			}
		default:
			t.Fatalf("subscriber %d did not receive the published value", i)
		}
	}
}

func TestBroadcast_CancelClosesStream(t *testing.T) {
	b := NewBroadcast[int]()
	ch, cancel := b.Subscribe()
	cancel()

	if _, open := <-ch; open {
		t.Error("stream still open after cancel")
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d after cancel, want 0", b.Len())
	}
	// cancelling twice is a no-op
	cancel()
}

func TestBroadcast_SlowSubscriberDoesNotBlockWriter(t *testing.T) {
	b := NewBroadcast[int]()
	_, cancel := b.Subscribe()
	defer cancel()

	// Overflow the subscriber buffer; Set must never block.
	for i := 0; i < subscriberBuffer*4; i++ {
		b.Set(i)
	}

	if v, ok := b.Get(); !ok || v != subscriberBuffer*4-1 {
		t.Errorf("Get() = %d, %v; want latest value", v, ok)
	}
}

func TestBroadcast_ConcurrentUse(t *testing.T) {
	b := NewBroadcast[int]()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ch, cancel := b.Subscribe()
			b.Set(n)
			<-ch
			cancel()
		}(i)
	}
	wg.Wait()
	if b.Len() != 0 {
		t.Errorf("Len() = %d after all cancels, want 0", b.Len())
	}
}
