// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package notify

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Kind classifies a confirm dialog for presentation purposes.
type Kind int

const (
	KindInfo Kind = iota
	KindWarning
	KindDanger
)

// Dialog describes one pending confirmation request.
type Dialog struct {
	ID          string
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
	Kind        Kind
}

// Options configures a confirmation request. Zero fields fall back to
// the platform defaults.
type Options struct {
	Title       string
	ConfirmText string
	CancelText  string
	Kind        Kind
}

// Confirms is a publish/subscribe channel for blocking yes/no questions.
//
// A requester calls Request and blocks until some renderer answers via
// Respond with the matching dialog id, or the context is cancelled.
// The zero value is ready to use; safe for concurrent use.
type Confirms struct {
	mu      sync.Mutex
	subID   int
	subs    map[int]chan Dialog
	pending map[string]chan bool
}

// NewConfirms returns an empty confirm channel.
func NewConfirms() *Confirms {
	return &Confirms{
		subs:    make(map[int]chan Dialog),
		pending: make(map[string]chan bool),
	}
}

// Request publishes a dialog and blocks until it is answered or ctx is
// done. A cancelled context counts as "not confirmed".
func (c *Confirms) Request(ctx context.Context, message string, opts Options) bool {
	if opts.Title == "" {
		opts.Title = "¿Estás seguro?"
	}
	if opts.ConfirmText == "" {
		opts.ConfirmText = "Confirmar"
	}
	if opts.CancelText == "" {
		opts.CancelText = "Cancelar"
	}

	d := Dialog{
		ID:          uuid.NewString(),
		Title:       opts.Title,
		Message:     message,
		ConfirmText: opts.ConfirmText,
		CancelText:  opts.CancelText,
		Kind:        opts.Kind,
	}

	answer := make(chan bool, 1)

	c.mu.Lock()
	if c.pending == nil {
		c.pending = make(map[string]chan bool)
	}
	c.pending[d.ID] = answer
	for _, ch := range c.subs {
		select {
		case ch <- d:
		default:
		}
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, d.ID)
		c.mu.Unlock()
	}()

	select {
	case confirmed := <-answer:
		return confirmed
	case <-ctx.Done():
		return false
	}
}

// Respond answers the dialog with the given id. Unknown ids are ignored;
// answering the same dialog twice is a no-op.
func (c *Confirms) Respond(id string, confirmed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ch, ok := c.pending[id]; ok {
		select {
		case ch <- confirmed:
		default:
		}
		delete(c.pending, id)
	}
}

// Subscribe returns a stream of future dialogs and a cancel function.
// Renderers answer each dialog via Respond.
func (c *Confirms) Subscribe() (<-chan Dialog, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subs == nil {
		c.subs = make(map[int]chan Dialog)
	}
	id := c.subID
	c.subID++
	ch := make(chan Dialog, 8)
	c.subs[id] = ch
	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if s, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(s)
		}
	}
	return ch, cancel
}
