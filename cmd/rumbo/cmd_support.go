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

func runSupport(cmd *cobra.Command, args []string) error {
	ux.Box("Soporte", fmt.Sprintf(`¿Algo no funciona o tienes una sugerencia?

  %s soporte@rumbo-travel.com
  %s https://rumbo-travel.com/ayuda

Incluye la salida de %s para que podamos ayudarte antes.`,
		ux.Styles.Bold.Render("Email:  "),
		ux.Styles.Bold.Render("Ayuda:  "),
		ux.Styles.Highlight.Render("rumbo version")))
	return nil
}
