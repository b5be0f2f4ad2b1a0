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
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rumbo-travel/rumbo/pkg/api"
	"github.com/rumbo-travel/rumbo/pkg/nameutil"
	"github.com/rumbo-travel/rumbo/pkg/ux"
	"github.com/spf13/cobra"
)

func runProfileShow(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	var (
		profile *api.Profile
		err     error
	)
	if len(args) == 1 {
		var userID int
		if userID, err = parseID(args[0], "user"); err != nil {
			return err
		}
		profile, err = app.API.Profile().ByID(ctx, userID)
	} else {
		profile, err = app.API.Profile().Own(ctx)
	}
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("ese perfil no existe")
		}
		return fmt.Errorf("could not load the profile: %s", userMessage(err))
	}
	if printJSON(profile) {
		return nil
	}

	renderProfile(profile)
	return nil
}

func runProfileEdit(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if !ux.IsInteractive() {
		return fmt.Errorf("profile edit needs an interactive terminal")
	}

	loadCtx, cancelLoad := apiCtx(cmd.Context())
	current, err := app.API.Profile().Own(loadCtx)
	cancelLoad()
	if err != nil {
		return fmt.Errorf("could not load your profile: %s", userMessage(err))
	}

	upd := api.ProfileUpdate{
		FirstName: current.FirstName,
		LastName:  current.LastName,
		Phone:     current.Phone,
		City:      current.City,
		Country:   current.Country,
		Bio:       current.Bio,
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Nombre").Value(&upd.FirstName).
				Validate(notBlank("indica tu nombre")),
			huh.NewInput().Title("Apellidos").Value(&upd.LastName).
				Validate(notBlank("indica tus apellidos")),
			huh.NewInput().Title("Teléfono").Value(&upd.Phone),
			huh.NewInput().Title("Ciudad").Value(&upd.City),
			huh.NewInput().Title("País").Value(&upd.Country),
			huh.NewText().Title("Biografía").CharLimit(500).Value(&upd.Bio),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	saved, err := app.API.Profile().Update(ctx, upd)
	if err != nil {
		return fmt.Errorf("could not save your profile: %s", userMessage(err))
	}
	ux.Success(fmt.Sprintf("Perfil actualizado, %s.",
		nameutil.ShortName(saved.FirstName, saved.LastName)))
	return nil
}

func runProfileAvatar(cmd *cobra.Command, args []string) error {
	return uploadProfileImage(cmd, args[0], "avatar")
}

func runProfileCover(cmd *cobra.Command, args []string) error {
	return uploadProfileImage(cmd, args[0], "cover")
}

func uploadProfileImage(cmd *cobra.Command, path, kind string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	spin := ux.NewSpinner("Subiendo la imagen...")
	spin.Start()

	var status *api.StatusMessage
	if kind == "avatar" {
		status, err = app.API.Profile().UploadAvatar(ctx, filepath.Base(path), f)
	} else {
		status, err = app.API.Profile().UploadCover(ctx, filepath.Base(path), f)
	}
	if err != nil {
		spin.StopWithError(err)
		return fmt.Errorf("could not upload the image: %s", userMessage(err))
	}
	spin.StopWithSuccess(status.Message)
	return nil
}

func renderProfile(p *api.Profile) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n",
		ux.Styles.Highlight.Render(p.Initials),
		ux.Styles.Bold.Render(nameutil.CardName(p.FirstName, p.LastName)))
	fmt.Fprintf(&b, "@%s", p.Username)
	if p.Verified {
		fmt.Fprintf(&b, " %s", ux.Styles.Success.Render("verificado"))
	}
	b.WriteString("\n")
	if p.City != "" || p.Country != "" {
		fmt.Fprintf(&b, "%s %s, %s\n", string(ux.IconPin), p.City, p.Country)
	}
	if p.Age > 0 {
		fmt.Fprintf(&b, "%d años\n", p.Age)
	}
	fmt.Fprintf(&b, "Miembro desde %s\n", p.MemberSince)
	fmt.Fprintf(&b, "\n%s %s  %s\n",
		stars(avgToInt(p.AvgRating)),
		ux.Styles.Muted.Render(fmt.Sprintf("(%s de %d reseñas)", p.AvgRating, p.TotalReviews)),
		ux.Styles.Muted.Render(fmt.Sprintf("%d viajes · %d logros", p.CompletedTrips, p.TotalBadges)))
	if p.Bio != "" {
		b.WriteString("\n" + p.Bio + "\n")
	}
	ux.Box("Perfil", strings.TrimRight(b.String(), "\n"))

	if len(p.UpcomingTrips) > 0 {
		ux.Title("Próximos viajes")
		for _, t := range p.UpcomingTrips {
			fmt.Printf("  %s %s %s\n", string(ux.IconPlane),
				ux.Styles.Bold.Render(t.TripName),
				ux.Styles.Muted.Render(fmt.Sprintf("(#%d, %s)", t.GroupID, t.Destination)))
		}
	}
	if len(p.PastTrips) > 0 {
		ux.Title("Historial")
		for _, t := range p.PastTrips {
			fmt.Printf("  %s %s %s\n", string(ux.IconBullet), t.TripName,
				ux.Styles.Muted.Render(fmt.Sprintf("(#%d)", t.GroupID)))
		}
	}
	if len(p.RecentReviews) > 0 {
		ux.Title("Reseñas recientes")
		for _, r := range p.RecentReviews {
			fmt.Printf("  %s %s %s\n", stars(r.Rating),
				ux.Styles.Bold.Render(r.Author.FullName),
				ux.Styles.Muted.Render(r.Date))
			if r.Comment != "" {
				fmt.Println(ux.Styles.Muted.Render("      " + r.Comment))
			}
		}
	}
	if len(p.Badges) > 0 {
		ux.Title("Logros")
		for _, a := range p.Badges {
			fmt.Printf("  %s %s %s\n", a.Icon, ux.Styles.Bold.Render(a.Name),
				ux.Styles.Muted.Render(a.Detail))
		}
	}
}

// avgToInt rounds the backend's "4,3"-style average for the star strip.
func avgToInt(avg string) int {
	avg = strings.ReplaceAll(avg, ",", ".")
	var v float64
	if _, err := fmt.Sscanf(avg, "%f", &v); err != nil {
		return 0
	}
	return int(v + 0.5)
}
