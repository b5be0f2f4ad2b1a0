// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package notify decouples "something wants to tell the user" from
// "something renders it".
//
// Two channels exist: transient toasts (success/error/info/warning lines
// with a display duration) and confirm dialogs (blocking yes/no questions
// correlated by id). Emitters never render; renderers subscribe once and
// own presentation.
package notify

import (
	"sync"
	"time"
)

// Level classifies a toast.
type Level int

const (
	Success Level = iota
	Error
	Info
	Warning
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Error:
		return "error"
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "info"
	}
}

// Default display durations per level.
const (
	successDuration = 3000 * time.Millisecond
	errorDuration   = 4000 * time.Millisecond
	infoDuration    = 3000 * time.Millisecond
	warningDuration = 3500 * time.Millisecond
)

// Toast is one transient message.
type Toast struct {
	ID       int
	Level    Level
	Message  string
	Duration time.Duration
}

// Toasts is a publish/subscribe channel for transient messages.
//
// The zero value is ready to use. Safe for concurrent use. Unlike a
// broadcast store, toasts are not replayed: a subscriber only sees
// messages emitted after it subscribed.
type Toasts struct {
	mu     sync.Mutex
	nextID int
	subID  int
	subs   map[int]chan Toast
}

// NewToasts returns an empty toast channel.
func NewToasts() *Toasts {
	return &Toasts{subs: make(map[int]chan Toast)}
}

// Success emits a success toast.
func (t *Toasts) Success(msg string) { t.show(Success, msg, successDuration) }

// Error emits an error toast.
func (t *Toasts) Error(msg string) { t.show(Error, msg, errorDuration) }

// Info emits an info toast.
func (t *Toasts) Info(msg string) { t.show(Info, msg, infoDuration) }

// Warning emits a warning toast.
func (t *Toasts) Warning(msg string) { t.show(Warning, msg, warningDuration) }

func (t *Toasts) show(level Level, msg string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	toast := Toast{ID: t.nextID, Level: level, Message: msg, Duration: d}
	for _, ch := range t.subs {
		select {
		case ch <- toast:
		default: // renderer fell behind, drop
		}
	}
}

// Subscribe returns a stream of future toasts and a cancel function.
func (t *Toasts) Subscribe() (<-chan Toast, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.subs == nil {
		t.subs = make(map[int]chan Toast)
	}
	id := t.subID
	t.subID++
	ch := make(chan Toast, 32)
	t.subs[id] = ch
	cancel := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if c, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(c)
		}
	}
	return ch, cancel
}
