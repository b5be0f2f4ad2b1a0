// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rumbo-travel/rumbo/pkg/api"
	"github.com/rumbo-travel/rumbo/pkg/nameutil"
	"github.com/rumbo-travel/rumbo/pkg/ux"
	"github.com/spf13/cobra"
)

func runLogin(cmd *cobra.Command, args []string) error {
	if app.Session.IsAuthenticated() {
		u := app.Session.CurrentUser()
		ux.Info(fmt.Sprintf("Ya has iniciado sesión como %s. Usa `rumbo logout` para cambiar de cuenta.",
			nameutil.ShortName(u.FirstName, u.LastName)))
		return nil
	}
	if !ux.IsInteractive() {
		return fmt.Errorf("login needs an interactive terminal")
	}

	var creds api.Credentials
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Usuario, email o teléfono").
				Value(&creds.Username).
				Validate(notBlank("indica tu usuario")),
			huh.NewInput().
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password).
				Validate(notBlank("indica tu contraseña")),
			huh.NewConfirm().
				Title("¿Recordar sesión?").
				Value(&creds.RememberMe),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	spin := ux.NewSpinner("Iniciando sesión...").WithType(ux.SpinnerCompass)
	spin.Start()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	resp, err := app.API.Auth().Login(ctx, creds)
	if err != nil {
		spin.StopWithError(err)
		return loginError(err)
	}
	if err := app.Session.Login(resp.Token, resp.User); err != nil {
		spin.StopWithError(err)
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("Hola de nuevo, %s.",
		nameutil.ShortName(resp.User.FirstName, resp.User.LastName)))
	ux.Tip("Empieza con `rumbo home` o busca grupos con `rumbo groups search`.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	if !ux.IsInteractive() {
		return fmt.Errorf("register needs an interactive terminal")
	}

	var (
		reg       api.Registration
		birthDate string
	)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Nombre").Value(&reg.FirstName).
				Validate(notBlank("indica tu nombre")),
			huh.NewInput().Title("Apellidos").Value(&reg.LastName).
				Validate(notBlank("indica tus apellidos")),
			huh.NewInput().Title("Nombre de usuario").Value(&reg.Username).
				Validate(availableUsername(cmd.Context())),
			huh.NewInput().Title("Email").Value(&reg.Email).
				Validate(availableEmail(cmd.Context())),
			huh.NewInput().Title("Teléfono").Value(&reg.Phone),
		),
		huh.NewGroup(
			huh.NewInput().Title("País").Value(&reg.Country).
				Validate(notBlank("indica tu país")),
			huh.NewInput().Title("Ciudad").Value(&reg.City).
				Validate(notBlank("indica tu ciudad")),
			huh.NewInput().Title("Fecha de nacimiento (AAAA-MM-DD)").Value(&birthDate).
				Validate(adultBirthDate),
		),
		huh.NewGroup(
			huh.NewInput().Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				Value(&reg.Password).
				Validate(strongPassword),
			huh.NewInput().Title("Repite la contraseña").
				EchoMode(huh.EchoModePassword).
				Value(&reg.ConfirmPassword),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if reg.Password != reg.ConfirmPassword {
		return fmt.Errorf("las contraseñas no coinciden")
	}
	reg.BirthDate = birthDate

	spin := ux.NewSpinner("Creando tu cuenta...").WithType(ux.SpinnerCompass)
	spin.Start()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	resp, err := app.API.Auth().Register(ctx, reg)
	if err != nil {
		spin.StopWithError(err)
		return err
	}
	if err := app.Session.Login(resp.Token, resp.User); err != nil {
		spin.StopWithError(err)
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("¡Bienvenido a Rumbo, %s!", resp.User.FirstName))
	ux.Tip("Completa tu perfil con `rumbo profile edit`.")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if !app.Session.IsAuthenticated() {
		ux.Muted("No había ninguna sesión abierta.")
		return nil
	}
	if err := app.Session.Logout(); err != nil {
		return err
	}
	ux.Success("Sesión cerrada. ¡Hasta la próxima!")
	return nil
}

// --- Form validators ---

func notBlank(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

// availableUsername asks the backend whether the name is free. Network
// failures do not block the form; the register call re-checks anyway.
func availableUsername(ctx context.Context) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("indica un nombre de usuario")
		}
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		free, err := app.API.Auth().CheckUsername(checkCtx, s)
		if err == nil && !free {
			return fmt.Errorf("ese nombre de usuario ya está en uso")
		}
		return nil
	}
}

func availableEmail(ctx context.Context) func(string) error {
	return func(s string) error {
		if !strings.Contains(s, "@") {
			return fmt.Errorf("indica un email válido")
		}
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		free, err := app.API.Auth().CheckEmail(checkCtx, s)
		if err == nil && !free {
			return fmt.Errorf("ese email ya está registrado")
		}
		return nil
	}
}

func adultBirthDate(s string) error {
	birth, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("usa el formato AAAA-MM-DD")
	}
	if age := yearsSince(birth, time.Now()); age < 18 {
		return fmt.Errorf("debes ser mayor de edad para registrarte")
	}
	return nil
}

func yearsSince(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.YearDay() < birth.YearDay() {
		years--
	}
	return years
}

func strongPassword(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("la contraseña necesita al menos 8 caracteres")
	}
	var hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasDigit {
		return fmt.Errorf("usa al menos una mayúscula y un número")
	}
	return nil
}

func loginError(err error) error {
	if api.IsUnauthorized(err) {
		return fmt.Errorf("credenciales incorrectas")
	}
	return err
}
