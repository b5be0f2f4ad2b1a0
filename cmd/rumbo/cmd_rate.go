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
	"github.com/rumbo-travel/rumbo/pkg/ux"
	"github.com/spf13/cobra"
)

func runRate(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	groupID, err := parseID(args[0], "grupo")
	if err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	sheet, err := app.API.Ratings().Pending(ctx, groupID)
	if err != nil {
		return fmt.Errorf("could not load the rating sheet: %s", userMessage(err))
	}
	if printJSON(sheet) {
		return nil
	}
	if len(sheet.Pending) == 0 {
		ux.Success("Ya calificaste a todos tus compañeros de este viaje.")
		return nil
	}
	if !ux.IsInteractive() {
		return fmt.Errorf("calificar requiere una terminal interactiva")
	}

	ux.Title(fmt.Sprintf("Califica a tus compañeros de %q", sheet.Group.TripName))
	if sheet.AlreadyRated > 0 {
		ux.Muted(fmt.Sprintf("Ya calificaste a %d; te quedan %d.", sheet.AlreadyRated, len(sheet.Pending)))
	}

	ratings, err := collectRatings(sheet.Pending)
	if err != nil {
		return err
	}
	if len(ratings) == 0 {
		ux.Warning("Debes calificar al menos a un participante.")
		return nil
	}

	spin := ux.NewSpinner("Enviando calificaciones...").WithType(ux.SpinnerCompass)
	spin.Start()
	status, err := app.API.Ratings().Submit(ctx, groupID, ratings)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("could not submit the ratings: %s", userMessage(err))
	}
	ux.Success(status.Message)
	return nil
}

// collectRatings runs one form page per unrated co-traveler. A peer
// left on "Omitir" is excluded from the batch.
func collectRatings(peers []api.RatablePeer) ([]api.RatingInput, error) {
	scores := make([]int, len(peers))
	comments := make([]string, len(peers))

	groups := make([]*huh.Group, 0, len(peers))
	for i, p := range peers {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("¿Cómo fue viajar con %s?", p.FullName)).
				Options(ratingOptions()...).
				Value(&scores[i]),
			huh.NewText().
				Title("Comentario (opcional)").
				CharLimit(300).
				Lines(2).
				Value(&comments[i]),
		))
	}
	if err := huh.NewForm(groups...).Run(); err != nil {
		return nil, err
	}
	return batchRatings(peers, scores, comments), nil
}

// batchRatings keeps only the peers that received a score.
func batchRatings(peers []api.RatablePeer, scores []int, comments []string) []api.RatingInput {
	var out []api.RatingInput
	for i, p := range peers {
		if scores[i] < 1 {
			continue
		}
		out = append(out, api.RatingInput{
			UserID:  p.UserID,
			Rating:  scores[i],
			Comment: strings.TrimSpace(comments[i]),
		})
	}
	return out
}

func ratingOptions() []huh.Option[int] {
	return []huh.Option[int]{
		huh.NewOption("★★★★★ Excelente", 5),
		huh.NewOption("★★★★☆ Muy bien", 4),
		huh.NewOption("★★★☆☆ Bien", 3),
		huh.NewOption("★★☆☆☆ Mejorable", 2),
		huh.NewOption("★☆☆☆☆ Mal", 1),
		huh.NewOption("Omitir por ahora", 0),
	}
}
