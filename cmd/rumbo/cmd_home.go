// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"

	"github.com/rumbo-travel/rumbo/pkg/api"
	"github.com/rumbo-travel/rumbo/pkg/ux"
	"github.com/spf13/cobra"
)

func runHome(cmd *cobra.Command, args []string) error {
	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	home, err := app.API.Home().Fetch(ctx)
	if err != nil {
		return fmt.Errorf("could not load the home view: %s", userMessage(err))
	}
	if printJSON(home) {
		return nil
	}

	renderHome(home)

	// The suggested-groups strip mirrors the landing page: first page
	// of open groups, newest first.
	page, err := app.API.Groups().Search(ctx, api.Filters{Size: 6})
	if err != nil {
		// Home already rendered; the strip is best-effort.
		app.Log.Warn("suggested groups unavailable", "error", err)
		return nil
	}
	renderGroupList("Grupos abiertos", page.Groups)
	if home.Authenticated {
		ux.Tip("Únete con `rumbo groups join <id>` o crea el tuyo con `rumbo groups create`.")
	} else {
		ux.Tip("Inicia sesión con `rumbo login` para unirte a un grupo.")
	}
	return nil
}

func renderHome(home *api.HomeData) {
	if !home.Authenticated {
		ux.Box("Rumbo", "Encuentra compañeros de viaje y organiza escapadas en grupo.\n"+
			ux.Styles.Muted.Render("No has iniciado sesión."))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", ux.Styles.Highlight.Render(home.Initials), ux.Styles.Bold.Render(home.Username))
	fmt.Fprintf(&b, "%s\n", ux.Styles.Muted.Render(home.Email))
	switch home.UnreadNotifications {
	case 0:
		b.WriteString(ux.Styles.Muted.Render("Sin notificaciones nuevas"))
	case 1:
		b.WriteString(ux.Styles.Warning.Render("1 notificación sin leer"))
	default:
		b.WriteString(ux.Styles.Warning.Render(
			fmt.Sprintf("%d notificaciones sin leer", home.UnreadNotifications)))
	}
	ux.Box(string(ux.IconCompass)+" Tu cuenta", b.String())
}
