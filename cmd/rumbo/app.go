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
	"sync"

	"github.com/rumbo-travel/rumbo/cmd/rumbo/config"
	"github.com/rumbo-travel/rumbo/pkg/api"
	"github.com/rumbo-travel/rumbo/pkg/logging"
	"github.com/rumbo-travel/rumbo/pkg/notify"
	"github.com/rumbo-travel/rumbo/pkg/realtime"
	"github.com/rumbo-travel/rumbo/pkg/session"
	"github.com/rumbo-travel/rumbo/pkg/ux"
)

// App bundles the long-lived services every command needs. It is
// assembled once in PersistentPreRun and torn down after Execute.
type App struct {
	Config   config.RumboConfig
	Log      *logging.Logger
	Session  *session.Store
	API      *api.Client
	Toasts   *notify.Toasts
	Confirms *notify.Confirms

	printer *ux.ToastPrinter

	mu      sync.Mutex
	channel *realtime.Channel
}

var app *App

// initApp builds the application context. Safe to call once per
// process; commands access the result through the app global.
func initApp() error {
	if err := config.Load(); err != nil {
		return err
	}
	cfg := config.Global

	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.Log.Level),
		LogDir:  cfg.Log.Dir,
		Service: "rumbo",
		Quiet:   true, // stderr stays clean for command output
	})

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not find the user's home directory: %w", err)
	}
	sess, err := session.Open(filepath.Join(home, ".rumbo"))
	if err != nil {
		return fmt.Errorf("could not open the session store: %w", err)
	}

	toasts := notify.NewToasts()

	client, err := api.New(api.Config{
		BaseURL:   cfg.API.BaseURL,
		AssetsURL: cfg.API.AssetsURL,
		Tokens:    sess,
		OnUnauthorized: func() {
			// Forced teardown: the backend no longer accepts the token.
			_ = sess.Logout()
			toasts.Warning("Tu sesión ha caducado. Inicia sesión de nuevo.")
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	printer := ux.NewToastPrinter(toasts)
	printer.Start()

	app = &App{
		Config:   cfg,
		Log:      logger,
		Session:  sess,
		API:      client,
		Toasts:   toasts,
		Confirms: notify.NewConfirms(),
		printer:  printer,
	}
	return nil
}

// closeApp flushes pending toasts and releases the log file.
func closeApp() {
	if app == nil {
		return
	}
	app.printer.Stop()
	_ = app.Log.Close()
}

// Realtime lazily builds the shared broker channel. One handle per
// process; a second call returns the same channel.
func (a *App) Realtime() *realtime.Channel {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.channel == nil {
		a.channel = realtime.New(realtime.Config{
			URL:    a.Config.Realtime.WSURL,
			Tokens: a.Session,
			Logger: a.Log,
		})
	}
	return a.channel
}

// requireAuth aborts the command when nobody is logged in.
func requireAuth() error {
	if !app.Session.IsAuthenticated() {
		return fmt.Errorf("necesitas iniciar sesión: ejecuta `rumbo login`")
	}
	return nil
}
