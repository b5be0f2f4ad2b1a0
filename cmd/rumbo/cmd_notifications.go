// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rumbo-travel/rumbo/pkg/api"
	"github.com/rumbo-travel/rumbo/pkg/realtime"
	"github.com/rumbo-travel/rumbo/pkg/ux"
	"github.com/spf13/cobra"
)

func runNotificationsList(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	var (
		page *api.NotificationsPage
		err  error
	)
	if notifyUnreadOnly {
		page, err = app.API.Notifications().Unread(ctx)
	} else {
		page, err = app.API.Notifications().List(ctx)
	}
	if err != nil {
		return fmt.Errorf("could not load your notifications: %s", userMessage(err))
	}
	if printJSON(page) {
		return nil
	}

	if len(page.Notifications) == 0 {
		ux.Info("No tienes notificaciones.")
		return nil
	}

	for _, n := range page.Notifications {
		printNotification(n)
	}
	if page.Unread > 0 {
		ux.Muted(fmt.Sprintf("%d sin leer — `rumbo notifications read-all` para marcarlas.", page.Unread))
	}
	return nil
}

func runNotificationsRead(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	id, err := parseID(args[0], "notification")
	if err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	if err := app.API.Notifications().MarkRead(ctx, id); err != nil {
		return fmt.Errorf("could not mark the notification: %s", userMessage(err))
	}
	ux.Success("Notificación marcada como leída.")
	return nil
}

func runNotificationsReadAll(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	if err := app.API.Notifications().MarkAllRead(ctx); err != nil {
		return fmt.Errorf("could not mark your notifications: %s", userMessage(err))
	}
	ux.Success("Todas las notificaciones marcadas como leídas.")
	return nil
}

func runNotificationsDelete(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	id, err := parseID(args[0], "notification")
	if err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	if err := app.API.Notifications().Delete(ctx, id); err != nil {
		return fmt.Errorf("could not delete the notification: %s", userMessage(err))
	}
	ux.Success("Notificación eliminada.")
	return nil
}

func runNotificationsClear(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if !confirmDanger(cmd.Context(), "¿Eliminar todas tus notificaciones?") {
		ux.Muted("Operación cancelada.")
		return nil
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	if err := app.API.Notifications().DeleteAll(ctx); err != nil {
		return fmt.Errorf("could not clear your notifications: %s", userMessage(err))
	}
	ux.Success("Bandeja vacía.")
	return nil
}

// runNotificationsWatch streams the personal topic until Ctrl-C.
func runNotificationsWatch(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	me := app.Session.CurrentUser()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	channel := app.Realtime()
	channel.Connect(ctx)
	defer channel.Disconnect()

	events, unsubscribe := channel.SubscribeUser(me.ID)
	defer unsubscribe()

	states, stopStates := channel.State().Subscribe()
	defer stopStates()

	ux.Info("Escuchando notificaciones. Pulsa Ctrl-C para salir.")
	for {
		select {
		case <-ctx.Done():
			return nil
		case st := <-states:
			switch st {
			case realtime.StateConnected:
				ux.Muted("conectado")
			case realtime.StateBackoff:
				ux.Muted("reconectando…")
			}
		case ev := <-events:
			if ev.Deleted {
				ux.Muted(fmt.Sprintf("notificación %d retirada", ev.NotificationID))
				continue
			}
			if ev.Notification != nil {
				printNotification(*ev.Notification)
			}
		}
	}
}

func printNotification(n api.Notification) {
	marker := ux.Styles.Muted.Render("·")
	if !n.Read {
		marker = ux.Styles.Warning.Render("●")
	}
	line := fmt.Sprintf("%s %s %s  %s",
		marker, ux.Styles.Muted.Render(fmt.Sprintf("#%-4d", n.ID)),
		ux.Styles.Muted.Render(n.Date), n.Content)
	if n.Group != nil {
		line += ux.Styles.Subtitle.Render(fmt.Sprintf("  (%s)", n.Group.TripName))
	}
	fmt.Println(line)
}
