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

func runTrips(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	trips, err := app.API.Trips().MyTrips(ctx)
	if err != nil {
		return fmt.Errorf("could not load your trips: %s", userMessage(err))
	}
	if printJSON(trips) {
		return nil
	}

	if trips.Total == 0 {
		ux.Info("Todavía no has viajado con Rumbo.")
		ux.Tip("Busca tu primer grupo con `rumbo groups search` o crea uno con `rumbo groups create`.")
		return nil
	}

	renderGroupList("Creados por ti", trips.Created)
	renderGroupList("Te has unido", trips.Joined)
	renderGroupList("Cerrados", trips.Closed)
	ux.Muted(fmt.Sprintf("%d grupos en total.", trips.Total))
	return nil
}

func runTripsLeave(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	id, err := parseID(args[0], "group")
	if err != nil {
		return err
	}
	if !confirmDanger(cmd.Context(), fmt.Sprintf("¿Salir del viaje %d?", id)) {
		ux.Muted("Operación cancelada.")
		return nil
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	status, err := app.API.Trips().Leave(ctx, id)
	if err != nil {
		return fmt.Errorf("could not leave the trip: %s", userMessage(err))
	}
	ux.Success(status.Message)
	return nil
}

func runTripsDelete(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	id, err := parseID(args[0], "group")
	if err != nil {
		return err
	}
	if !confirmDanger(cmd.Context(),
		fmt.Sprintf("¿Eliminar el viaje %d definitivamente?", id)) {
		ux.Muted("Operación cancelada.")
		return nil
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	if err := app.API.Trips().Delete(ctx, id); err != nil {
		return fmt.Errorf("could not delete the trip: %s", userMessage(err))
	}
	ux.Success("Viaje eliminado.")
	return nil
}
