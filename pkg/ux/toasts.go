// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"context"
	"sync"

	"github.com/charmbracelet/huh"

	"github.com/rumbo-travel/rumbo/pkg/notify"
)

// ToastPrinter drains a toast bus onto the terminal, one styled line
// per toast. In a CLI there is no screen region to pop toasts into, so
// they are printed in arrival order through the regular output helpers.
type ToastPrinter struct {
	toasts *notify.Toasts

	mu     sync.Mutex
	cancel func()
	done   chan struct{}
}

// NewToastPrinter wires a printer to the bus. Call Start to begin
// draining.
func NewToastPrinter(toasts *notify.Toasts) *ToastPrinter {
	return &ToastPrinter{toasts: toasts}
}

// Start begins printing toasts until Stop is called. Starting twice is
// a no-op.
func (p *ToastPrinter) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ch, cancel := p.toasts.Subscribe()
	p.cancel = cancel
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		for toast := range ch {
			Print(toast)
		}
	}()
}

// Stop detaches from the bus and waits for the printer goroutine.
func (p *ToastPrinter) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Print renders one toast according to its level.
func Print(t notify.Toast) {
	switch t.Level {
	case notify.Success:
		Success(t.Message)
	case notify.Error:
		Error(t.Message)
	case notify.Warning:
		Warning(t.Message)
	default:
		Info(t.Message)
	}
}

// AskConfirm answers confirmation dialogs on the terminal. It serves
// one Confirms bus until ctx is cancelled, rendering each dialog as an
// inline confirm form. In machine mode every dialog is answered with
// its safe default (no).
func AskConfirm(ctx context.Context, confirms *notify.Confirms) {
	dialogs, cancel := confirms.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-dialogs:
			if !ok {
				return
			}
			confirms.Respond(d.ID, promptDialog(d))
		}
	}
}

func promptDialog(d notify.Dialog) bool {
	if !IsInteractive() {
		return false
	}
	if d.Title != "" {
		if d.Kind == notify.KindDanger {
			Warning(d.Title)
		} else {
			Title(d.Title)
		}
	}
	ok := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(d.Message).
			Affirmative(d.ConfirmText).
			Negative(d.CancelText).
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false
	}
	return ok
}
