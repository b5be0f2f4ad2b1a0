// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

type RumboConfig struct {
	// API: where the backend and its static assets live
	API APIConfig `yaml:"api"`

	// Realtime: the chat/notification broker endpoint
	Realtime RealtimeConfig `yaml:"realtime"`

	// Log: diagnostics output
	Log LogConfig `yaml:"log"`

	// UX: terminal output style
	UX UXConfig `yaml:"ux"`
}

type APIConfig struct {
	BaseURL   string `yaml:"base_url"`   // e.g. https://api.rumbo-travel.com
	AssetsURL string `yaml:"assets_url"` // e.g. https://assets.rumbo-travel.com
}

type RealtimeConfig struct {
	WSURL string `yaml:"ws_url"` // e.g. wss://api.rumbo-travel.com/ws
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir"`   // empty disables file logging
}

type UXConfig struct {
	// Personality can be "full", "standard", "minimal", or "machine".
	// Empty means auto-detect from the terminal.
	Personality string `yaml:"personality"`
}

// DefaultConfig returns the config written on first run.
func DefaultConfig() RumboConfig {
	return RumboConfig{
		API: APIConfig{
			BaseURL:   "https://api.rumbo-travel.com",
			AssetsURL: "https://assets.rumbo-travel.com",
		},
		Realtime: RealtimeConfig{
			WSURL: "wss://api.rumbo-travel.com/ws",
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "~/.rumbo/logs",
		},
		UX: UXConfig{},
	}
}
