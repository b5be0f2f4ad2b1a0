// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rumbo-travel/rumbo/pkg/api"
	"github.com/rumbo-travel/rumbo/pkg/notify"
	"github.com/rumbo-travel/rumbo/pkg/ux"
)

const requestTimeout = 30 * time.Second

// apiCtx derives the per-request context every command handler uses.
func apiCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, requestTimeout)
}

// printJSON emits v to stdout when --json is set and reports whether it
// did, so render paths can bail out of the styled output.
func printJSON(v any) bool {
	if !jsonOutput {
		return false
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		app.Log.Error("json output failed", "error", err)
	}
	return true
}

// parseID converts a positional argument into a positive numeric id.
func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid %s id", arg, what)
	}
	return id, nil
}

// displayDate re-renders a backend civil date as DD/MM/YYYY. Unparsable
// values pass through untouched.
func displayDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

// statusBadge renders a group status with the matching color.
func statusBadge(status string) string {
	switch strings.ToUpper(status) {
	case "ABIERTO":
		return ux.Styles.Success.Render("abierto")
	case "CERRADO":
		return ux.Styles.Warning.Render("cerrado")
	case "FINALIZADO":
		return ux.Styles.Muted.Render("finalizado")
	default:
		return strings.ToLower(status)
	}
}

// groupLine is the one-line list rendering shared by search and trips.
func groupLine(g api.Group) string {
	dest, dates := "", ""
	if g.Trip != nil {
		dest = g.Trip.Destination
		dates = fmt.Sprintf("%s → %s", displayDate(g.Trip.StartDate), displayDate(g.Trip.EndDate))
	}
	seats := fmt.Sprintf("%d/%d", g.TotalParticipants, g.MaxParticipants)
	return fmt.Sprintf("%s %s  %s  %s  %s  %s",
		ux.Styles.Muted.Render(fmt.Sprintf("#%-4d", g.ID)),
		ux.Styles.Bold.Render(padRight(g.TripName, 28)),
		padRight(dest, 18),
		padRight(dates, 25),
		padRight(seats, 6),
		statusBadge(g.Status))
}

func padRight(s string, width int) string {
	if runes := []rune(s); len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len([]rune(s)))
}

// renderGroupList prints a titled section of groups, or a muted
// placeholder when the bucket is empty.
func renderGroupList(title string, groups []api.Group) {
	ux.Title(title)
	if len(groups) == 0 {
		ux.Muted("  (ninguno)")
		return
	}
	for _, g := range groups {
		fmt.Println("  " + groupLine(g))
	}
}

// tagChips renders the group's tags as inline chips.
func tagChips(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	chip := lipgloss.NewStyle().Foreground(ux.ColorSeaBlue)
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = chip.Render("#" + t)
	}
	return strings.Join(parts, " ")
}

// stars renders a 1-5 rating as filled and hollow stars.
func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return ux.Styles.Warning.Render(strings.Repeat("★", rating)) +
		ux.Styles.Muted.Render(strings.Repeat("☆", 5-rating))
}

// confirmDanger routes a destructive question through the confirm bus
// so machine mode answers "no" and interactive mode gets a prompt.
func confirmDanger(ctx context.Context, message string) bool {
	dialogCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go ux.AskConfirm(dialogCtx, app.Confirms)
	return app.Confirms.Request(ctx, message, notify.Options{
		Title:       "Acción irreversible",
		ConfirmText: "Sí, continuar",
		CancelText:  "Cancelar",
		Kind:        notify.KindDanger,
	})
}

// userMessage prefers the backend's Spanish error copy when present.
func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}
