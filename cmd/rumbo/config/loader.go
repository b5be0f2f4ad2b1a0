// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// Global is a singleton instance
	Global RumboConfig
	once   sync.Once
)

// Load ensures the config is loaded into the Global variable. The file
// lives at ~/.rumbo/rumbo.yaml and is created with defaults on first
// run. Environment variables override the file:
//
//	RUMBO_API_URL     backend base URL
//	RUMBO_ASSETS_URL  static asset base URL
//	RUMBO_WS_URL      realtime broker endpoint
//	RUMBO_LOG_LEVEL   log level
func Load() error {
	var err error
	once.Do(func() {
		err = loadInternal()
	})
	return err
}

func loadInternal() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not find the user's home directory: %w", err)
	}
	configPath := filepath.Join(home, ".rumbo", "rumbo.yaml")
	// create it if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf(" First run detected, creating the config at %s\n", configPath)
		if err := createDefault(configPath); err != nil {
			return err
		}
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read the config file: %w", err)
	}
	if err = yaml.Unmarshal(data, &Global); err != nil {
		return fmt.Errorf("failed to parse the config into the Global singleton: %w", err)
	}
	applyEnvOverrides(&Global)
	return nil
}

func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	defaultCfg := DefaultConfig()
	data, err := yaml.Marshal(defaultCfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func applyEnvOverrides(cfg *RumboConfig) {
	if v := os.Getenv("RUMBO_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("RUMBO_ASSETS_URL"); v != "" {
		cfg.API.AssetsURL = v
	}
	if v := os.Getenv("RUMBO_WS_URL"); v != "" {
		cfg.Realtime.WSURL = v
	}
	if v := os.Getenv("RUMBO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
