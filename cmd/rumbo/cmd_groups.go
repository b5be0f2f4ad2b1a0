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

	"github.com/rumbo-travel/rumbo/cmd/rumbo/internal/tui"
	"github.com/rumbo-travel/rumbo/pkg/api"
	"github.com/rumbo-travel/rumbo/pkg/ux"
	"github.com/rumbo-travel/rumbo/pkg/wizard"
	"github.com/spf13/cobra"
)

func runGroupsSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	page, err := app.API.Groups().Search(ctx, api.Filters{
		Destination: searchDestination,
		StartDate:   searchFrom,
		EndDate:     searchTo,
		Sort:        searchSort,
		Page:        searchPage,
		Size:        searchSize,
	})
	if err != nil {
		return fmt.Errorf("search failed: %s", userMessage(err))
	}
	if printJSON(page) {
		return nil
	}

	if page.TotalElements == 0 {
		ux.Info("Ningún grupo coincide con tu búsqueda.")
		ux.Tip("Prueba sin filtros, o crea tu propio grupo con `rumbo groups create`.")
		return nil
	}

	title := fmt.Sprintf("Grupos (%d)", page.TotalElements)
	if searchDestination != "" {
		title = fmt.Sprintf("Grupos hacia %s (%d)", searchDestination, page.TotalElements)
	}
	renderGroupList(title, page.Groups)
	if page.TotalPages > 1 {
		ux.Muted(fmt.Sprintf("Página %d de %d — usa --page para ver más.",
			page.CurrentPage+1, page.TotalPages))
	}
	return nil
}

func runGroupsShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "group")
	if err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	detail, err := app.API.Groups().Detail(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("el grupo %d no existe", id)
		}
		return fmt.Errorf("could not load group %d: %s", id, userMessage(err))
	}
	if printJSON(detail) {
		return nil
	}

	renderGroupDetail(detail)

	// Permissions drive the hints; they only exist for signed-in users.
	if app.Session.IsAuthenticated() {
		perms, err := app.API.Groups().Permissions(ctx, id)
		if err != nil {
			app.Log.Warn("permissions unavailable", "group", id, "error", err)
			return nil
		}
		renderPermissionHints(id, perms)
	}
	return nil
}

func runGroupsCreate(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if !ux.IsInteractive() {
		return fmt.Errorf("the group wizard needs an interactive terminal")
	}

	eng := wizard.NewEngine()
	status, err := tui.RunWizard(cmd.Context(), eng, eng.NewCreate(), app.API.Groups())
	if err != nil {
		return err
	}
	if status == nil {
		ux.Muted("Creación cancelada.")
		return nil
	}
	ux.Success(status.Message)
	ux.Tip("Revisa las solicitudes de unión con `rumbo requests <id>`.")
	return nil
}

func runGroupsEdit(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if !ux.IsInteractive() {
		return fmt.Errorf("the group wizard needs an interactive terminal")
	}
	id, err := parseID(args[0], "group")
	if err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	detail, err := app.API.Groups().Detail(ctx, id)
	cancel()
	if err != nil {
		return fmt.Errorf("could not load group %d: %s", id, userMessage(err))
	}

	eng := wizard.NewEngine()
	status, err := tui.RunWizard(cmd.Context(), eng, eng.NewEdit(detail), app.API.Groups())
	if err != nil {
		return err
	}
	if status == nil {
		ux.Muted("Edición cancelada.")
		return nil
	}
	ux.Success(status.Message)
	return nil
}

func runGroupsJoin(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	id, err := parseID(args[0], "group")
	if err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	status, err := app.API.Groups().Join(ctx, id)
	if err != nil {
		return fmt.Errorf("could not request to join: %s", userMessage(err))
	}
	ux.Success(status.Message)
	ux.Tip("Te avisaremos cuando el creador responda. Mira `rumbo notifications`.")
	return nil
}

func runGroupsLeave(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	id, err := parseID(args[0], "group")
	if err != nil {
		return err
	}
	if !confirmDanger(cmd.Context(), fmt.Sprintf("¿Salir del grupo %d?", id)) {
		ux.Muted("Operación cancelada.")
		return nil
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	status, err := app.API.Groups().Leave(ctx, id)
	if err != nil {
		return fmt.Errorf("could not leave the group: %s", userMessage(err))
	}
	ux.Success(status.Message)
	return nil
}

func runGroupsClose(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	id, err := parseID(args[0], "group")
	if err != nil {
		return err
	}
	if !confirmDanger(cmd.Context(),
		fmt.Sprintf("¿Cerrar el grupo %d? Nadie más podrá unirse.", id)) {
		ux.Muted("Operación cancelada.")
		return nil
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	status, err := app.API.Groups().Close(ctx, id)
	if err != nil {
		return fmt.Errorf("could not close the group: %s", userMessage(err))
	}
	ux.Success(status.Message)
	return nil
}

func runGroupsDelete(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	id, err := parseID(args[0], "group")
	if err != nil {
		return err
	}
	if !confirmDanger(cmd.Context(),
		fmt.Sprintf("¿Eliminar el grupo %d de forma permanente? El chat y el itinerario se perderán.", id)) {
		ux.Muted("Operación cancelada.")
		return nil
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	if err := app.API.Groups().Delete(ctx, id); err != nil {
		return fmt.Errorf("could not delete the group: %s", userMessage(err))
	}
	ux.Success("Grupo eliminado.")
	return nil
}

// --- Rendering ---

func renderGroupDetail(detail *api.GroupDetail) {
	g := detail.Group

	var b strings.Builder
	if g.Trip != nil {
		fmt.Fprintf(&b, "%s %s\n", string(ux.IconPin), ux.Styles.Bold.Render(g.Trip.Destination))
		fmt.Fprintf(&b, "%s %s → %s\n", string(ux.IconPlane),
			displayDate(g.Trip.StartDate), displayDate(g.Trip.EndDate))
		if g.Trip.MeetingPoint != "" {
			fmt.Fprintf(&b, "Punto de encuentro: %s\n", g.Trip.MeetingPoint)
		}
		if g.Trip.MinAge > 0 {
			fmt.Fprintf(&b, "Edades: %d-%d años\n", g.Trip.MinAge, g.Trip.MaxAge)
		}
	}
	fmt.Fprintf(&b, "Plazas: %d/%d  Estado: %s\n",
		detail.AcceptedMembers, g.MaxParticipants, statusBadge(g.Status))
	if g.Creator != nil {
		fmt.Fprintf(&b, "Organiza: %s\n", g.Creator.FullName)
	}
	if chips := tagChips(g.Tags); chips != "" {
		b.WriteString(chips + "\n")
	}
	if g.Trip != nil && g.Trip.Description != "" {
		b.WriteString("\n" + g.Trip.Description)
	}
	ux.Box(fmt.Sprintf("%s  #%d", g.TripName, g.ID), strings.TrimRight(b.String(), "\n"))

	if len(detail.Itinerary) > 0 {
		ux.Title("Itinerario")
		for _, day := range detail.Itinerary {
			line := fmt.Sprintf("  %s Día %d", string(ux.IconBullet), day.DayNumber)
			if day.Title != "" {
				line += ": " + ux.Styles.Bold.Render(day.Title)
			}
			if day.Duration != "" {
				line += ux.Styles.Muted.Render(" (" + day.Duration + ")")
			}
			fmt.Println(line)
			if day.Description != "" {
				fmt.Println(ux.Styles.Muted.Render("      " + day.Description))
			}
		}
	}

	if len(g.Participants) > 0 {
		ux.Title("Participantes")
		for _, p := range g.Participants {
			fmt.Printf("  %s %s\n", ux.Styles.Highlight.Render(p.Initials), p.FullName)
		}
	}
}

func renderPermissionHints(id int, perms *api.Permissions) {
	switch {
	case perms.IsCreator:
		ux.Tip(fmt.Sprintf("Es tu grupo: `rumbo requests %d`, `rumbo groups edit %d`, `rumbo groups close %d`.", id, id, id))
	case perms.IsMember:
		ux.Tip(fmt.Sprintf("Eres miembro: abre el chat con `rumbo chat %d`.", id))
	case perms.PendingRequest:
		ux.Info("Tu solicitud está pendiente de respuesta.")
	case perms.CanJoin:
		ux.Tip(fmt.Sprintf("¿Te apuntas? `rumbo groups join %d`.", id))
	}
}
