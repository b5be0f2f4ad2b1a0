// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package session holds the authenticated identity of the current user.
//
// The session (bearer token plus user record) is persisted as yaml under
// the rumbo config directory so consecutive CLI invocations stay logged
// in. The token is treated as opaque except for its exp claim, which is
// decoded client-side to drop visibly expired sessions without a round
// trip. Signature verification is the backend's job.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rumbo-travel/rumbo/pkg/store"
)

// FileName is the session file name inside the config directory.
const FileName = "session.yaml"

// ErrNotAuthenticated is returned by operations that need a live session.
var ErrNotAuthenticated = errors.New("no active session")

// User is the identity record the backend returns at login.
type User struct {
	ID        int      `json:"id" yaml:"id"`
	Username  string   `json:"nombreUsuario" yaml:"username"`
	Email     string   `json:"email" yaml:"email"`
	FirstName string   `json:"nombre" yaml:"first_name"`
	LastName  string   `json:"apellido" yaml:"last_name"`
	Initials  string   `json:"iniciales" yaml:"initials"`
	AvatarURL string   `json:"imagenPerfil,omitempty" yaml:"avatar_url,omitempty"`
	Roles     []string `json:"roles" yaml:"roles"`
}

// fileData is the on-disk session shape.
type fileData struct {
	Token string `yaml:"token"`
	User  *User  `yaml:"user,omitempty"`
}

// Store holds the current session and notifies subscribers on changes.
//
// Safe for concurrent use: all mutation goes through Login/Logout which
// publish to the user broadcast; reads go through the broadcast or the
// accessor methods.
type Store struct {
	dir     string
	current *store.Broadcast[*User]
	token   *store.Broadcast[string]
	now     func() time.Time
}

// Open loads the session persisted under dir (e.g. ~/.rumbo). A missing
// file means an anonymous session, not an error. A token whose exp claim
// has passed is discarded silently.
func Open(dir string) (*Store, error) {
	s := &Store{
		dir:     dir,
		current: store.NewBroadcast[*User](),
		token:   store.NewBroadcast[string](),
		now:     time.Now,
	}

	data, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var fd fileData
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}

	if fd.Token != "" && tokenExpired(fd.Token, s.now()) {
		// Stale session from a previous run; clear without redirecting.
		_ = os.Remove(s.path())
		return s, nil
	}

	if fd.Token != "" {
		s.token.Set(fd.Token)
		s.current.Set(fd.User)
	}
	return s, nil
}

func (s *Store) path() string { return filepath.Join(s.dir, FileName) }

// Token returns the current bearer token, or "" when anonymous.
func (s *Store) Token() string {
	tok, _ := s.token.Get()
	return tok
}

// CurrentUser returns the logged-in user, or nil when anonymous.
func (s *Store) CurrentUser() *User {
	u, _ := s.current.Get()
	return u
}

// Users exposes the user identity as an observable value. Subscribers
// receive the current user immediately and every later login/logout.
func (s *Store) Users() *store.Broadcast[*User] { return s.current }

// IsAuthenticated reports whether a token is present and not expired.
func (s *Store) IsAuthenticated() bool {
	tok := s.Token()
	return tok != "" && !tokenExpired(tok, s.now())
}

// Login persists the token and user and publishes the new identity.
func (s *Store) Login(token string, user *User) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	out, err := yaml.Marshal(fileData{Token: token, User: user})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path(), out, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	s.token.Set(token)
	s.current.Set(user)
	return nil
}

// Logout removes the persisted session and publishes a nil identity.
func (s *Store) Logout() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	s.token.Set("")
	s.current.Set(nil)
	return nil
}

// tokenExpired decodes the JWT payload's exp claim. Malformed tokens
// count as expired: we cannot tell how long they are good for, and the
// backend will reject them anyhow.
func tokenExpired(token string, now time.Time) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return true
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return true
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return true
	}
	return now.After(time.Unix(claims.Exp, 0))
}
