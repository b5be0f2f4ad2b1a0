// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rumbo-travel/rumbo/pkg/notify"
)

func TestToastPrinter_PrintsInArrivalOrder(t *testing.T) {
	toasts := notify.NewToasts()
	printer := NewToastPrinter(toasts)

	var out string
	withLevel(PersonalityMachine, func() {
		out = captureStdout(func() {
			printer.Start()
			toasts.Success("grupo creado")
			toasts.Info("3 notificaciones sin leer")
			// Give the drain goroutine a beat before detaching.
			time.Sleep(50 * time.Millisecond)
			printer.Stop()
		})
	})

	first := strings.Index(out, "grupo creado")
	second := strings.Index(out, "3 notificaciones sin leer")
	if first == -1 || second == -1 {
		t.Fatalf("missing toast output: %q", out)
	}
	if first > second {
		t.Errorf("toasts out of order: %q", out)
	}
}

func TestToastPrinter_StartTwiceIsNoop(t *testing.T) {
	toasts := notify.NewToasts()
	printer := NewToastPrinter(toasts)

	withLevel(PersonalityMachine, func() {
		captureStdout(func() {
			printer.Start()
			printer.Start()
			printer.Stop()
		})
	})
	// Stopping after a double start must not hang or panic.
	printer.Stop()
}

func TestPrint_LevelRouting(t *testing.T) {
	var out, errOut string
	withLevel(PersonalityMachine, func() {
		out = captureStdout(func() {
			Print(notify.Toast{Level: notify.Success, Message: "hecho"})
		})
		errOut = captureStderr(func() {
			Print(notify.Toast{Level: notify.Error, Message: "falló"})
		})
	})

	if !strings.Contains(out, "OK: hecho") {
		t.Errorf("success toast misrouted: %q", out)
	}
	if !strings.Contains(errOut, "ERROR: falló") {
		t.Errorf("error toast misrouted: %q", errOut)
	}
}

func TestPromptDialog_NonInteractiveDefaultsNo(t *testing.T) {
	withLevel(PersonalityMachine, func() {
		d := notify.Dialog{
			Title:       "Acción irreversible",
			Message:     "¿Eliminar el grupo?",
			ConfirmText: "Sí, continuar",
			CancelText:  "Cancelar",
			Kind:        notify.KindDanger,
		}
		if promptDialog(d) {
			t.Error("non-interactive dialog must answer no")
		}
	})
}

func TestAskConfirm_MachineModeAnswersNo(t *testing.T) {
	confirms := notify.NewConfirms()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		withLevel(PersonalityMachine, func() {
			AskConfirm(ctx, confirms)
		})
	}()

	if confirms.Request(ctx, "¿Cerrar el grupo?", notify.Options{Kind: notify.KindDanger}) {
		t.Error("machine mode must decline confirmations")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("AskConfirm did not return after cancel")
	}
}
