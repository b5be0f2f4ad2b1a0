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

	"github.com/charmbracelet/huh"
	"github.com/rumbo-travel/rumbo/pkg/api"
	"github.com/rumbo-travel/rumbo/pkg/nameutil"
	"github.com/rumbo-travel/rumbo/pkg/ux"
	"github.com/spf13/cobra"
)

func runTestimonialsFeatured(cmd *cobra.Command, args []string) error {
	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	list, err := app.API.Testimonials().Featured(ctx, 6)
	if err != nil {
		return fmt.Errorf("could not load the testimonials: %s", userMessage(err))
	}
	if printJSON(list) {
		return nil
	}
	if len(list) == 0 {
		ux.Info("Todavía no hay testimonios destacados.")
		return nil
	}

	ux.Title("Lo que cuentan nuestros viajeros")
	for _, t := range list {
		printTestimonial(t, false)
	}
	ux.Tip("Deja el tuyo con `rumbo testimonials create \"...\"`.")
	return nil
}

func runTestimonialsCreate(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	input := api.TestimonialInput{
		Comment: strings.TrimSpace(strings.Join(args, " ")),
		Rating:  5,
	}
	if len(input.Comment) < 10 {
		return fmt.Errorf("cuéntanos un poco más: al menos 10 caracteres")
	}

	if ux.IsInteractive() {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[int]().
					Title("¿Cómo valoras tu experiencia?").
					Options(
						huh.NewOption("★★★★★ Excelente", 5),
						huh.NewOption("★★★★☆ Muy buena", 4),
						huh.NewOption("★★★☆☆ Buena", 3),
						huh.NewOption("★★☆☆☆ Mejorable", 2),
						huh.NewOption("★☆☆☆☆ Mala", 1),
					).
					Value(&input.Rating),
				huh.NewConfirm().
					Title("¿Publicar de forma anónima?").
					Value(&input.Anonymous),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	status, err := app.API.Testimonials().Create(ctx, input)
	if err != nil {
		return fmt.Errorf("could not submit the testimonial: %s", userMessage(err))
	}
	ux.Success(status.Message)
	ux.Muted("Tu testimonio aparecerá cuando el equipo lo apruebe.")
	return nil
}

func runTestimonialsPending(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	list, err := app.API.Testimonials().Pending(ctx)
	if err != nil {
		return fmt.Errorf("could not load the moderation queue: %s", userMessage(err))
	}
	if printJSON(list) {
		return nil
	}
	if len(list) == 0 {
		ux.Info("No hay testimonios pendientes de moderar.")
		return nil
	}

	ux.Title(fmt.Sprintf("Pendientes de moderación (%d)", len(list)))
	for _, t := range list {
		printTestimonial(t, true)
	}
	return nil
}

func runTestimonialsApprove(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	id, err := parseID(args[0], "testimonial")
	if err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	if err := app.API.Testimonials().Approve(ctx, id); err != nil {
		return fmt.Errorf("could not approve the testimonial: %s", userMessage(err))
	}
	ux.Success("Testimonio aprobado.")
	return nil
}

func runTestimonialsFeature(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	id, err := parseID(args[0], "testimonial")
	if err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	// The toggle needs the current flag; fetch it from the approved list.
	approved, err := app.API.Testimonials().Approved(ctx, 0)
	if err != nil {
		return fmt.Errorf("could not load the testimonial: %s", userMessage(err))
	}
	featured := false
	found := false
	for _, t := range approved {
		if t.ID == id {
			featured = t.Featured
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("el testimonio %d no está aprobado", id)
	}

	if err := app.API.Testimonials().SetFeatured(ctx, id, !featured); err != nil {
		return fmt.Errorf("could not update the testimonial: %s", userMessage(err))
	}
	if featured {
		ux.Success("Testimonio retirado de destacados.")
	} else {
		ux.Success("Testimonio destacado.")
	}
	return nil
}

func runTestimonialsDelete(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	id, err := parseID(args[0], "testimonial")
	if err != nil {
		return err
	}
	if !confirmDanger(cmd.Context(), fmt.Sprintf("¿Eliminar el testimonio %d?", id)) {
		ux.Muted("Operación cancelada.")
		return nil
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	if err := app.API.Testimonials().Delete(ctx, id); err != nil {
		return fmt.Errorf("could not delete the testimonial: %s", userMessage(err))
	}
	ux.Success("Testimonio eliminado.")
	return nil
}

func printTestimonial(t api.Testimonial, withID bool) {
	author := "Viajero anónimo"
	if !t.Anonymous {
		author = nameutil.CardName(t.AuthorFirst, t.AuthorLast)
		if t.AuthorCity != "" {
			author += ux.Styles.Muted.Render(fmt.Sprintf(" (%s, %s)", t.AuthorCity, t.AuthorCountry))
		}
	}
	head := fmt.Sprintf("%s %s", stars(t.Rating), ux.Styles.Bold.Render(author))
	if withID {
		head = ux.Styles.Muted.Render(fmt.Sprintf("#%-4d ", t.ID)) + head
	}
	fmt.Println(head)
	fmt.Println(ux.Styles.Muted.Render("  " + t.Comment))
}
