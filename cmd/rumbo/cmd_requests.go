// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/rumbo-travel/rumbo/pkg/ux"
	"github.com/spf13/cobra"
)

func runRequestsList(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	groupID, err := parseID(args[0], "group")
	if err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	page, err := app.API.Requests().Pending(ctx, groupID)
	if err != nil {
		return fmt.Errorf("could not load the join requests: %s", userMessage(err))
	}
	if printJSON(page) {
		return nil
	}

	if page.Total == 0 {
		ux.Info("No hay solicitudes pendientes.")
		return nil
	}

	ux.Title(fmt.Sprintf("Solicitudes pendientes (%d)", page.Total))
	for _, r := range page.Requests {
		line := fmt.Sprintf("  %s %s %s  %s",
			ux.Styles.Muted.Render(fmt.Sprintf("#%-4d", r.UserID)),
			ux.Styles.Highlight.Render(r.Initials),
			ux.Styles.Bold.Render(r.FullName),
			ux.Styles.Muted.Render(r.RequestedAt))
		if r.Attempts > 1 {
			line += ux.Styles.Warning.Render(fmt.Sprintf("  (%dº intento)", r.Attempts))
		}
		fmt.Println(line)
	}
	ux.Tip(fmt.Sprintf("Responde con `rumbo requests accept %d <user-id>` o `rumbo requests reject %d <user-id>`.",
		groupID, groupID))
	return nil
}

func runRequestsAccept(cmd *cobra.Command, args []string) error {
	return moderateRequest(cmd, args, true)
}

func runRequestsReject(cmd *cobra.Command, args []string) error {
	return moderateRequest(cmd, args, false)
}

func moderateRequest(cmd *cobra.Command, args []string, accept bool) error {
	if err := requireAuth(); err != nil {
		return err
	}
	groupID, err := parseID(args[0], "group")
	if err != nil {
		return err
	}
	userID, err := parseID(args[1], "user")
	if err != nil {
		return err
	}

	if !accept && !confirmDanger(cmd.Context(),
		fmt.Sprintf("¿Rechazar la solicitud del usuario %d?", userID)) {
		ux.Muted("Operación cancelada.")
		return nil
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	if accept {
		msg, err := app.API.Requests().Accept(ctx, groupID, userID)
		if err != nil {
			return fmt.Errorf("could not accept the request: %s", userMessage(err))
		}
		ux.Success(msg.Message)
	} else {
		msg, err := app.API.Requests().Reject(ctx, groupID, userID)
		if err != nil {
			return fmt.Errorf("could not reject the request: %s", userMessage(err))
		}
		ux.Success(msg.Message)
	}
	return nil
}
