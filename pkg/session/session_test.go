// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// makeToken builds an unsigned JWT-shaped token with the given expiry.
func makeToken(t *testing.T, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{"sub": "42", "exp": exp.Unix()})
	if err != nil {
		t.Fatal(err)
	}
	return fmt.Sprintf("%s.%s.sig", header, base64.RawURLEncoding.EncodeToString(payload))
}

func TestOpen_MissingFileIsAnonymous(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("fresh store reports authenticated")
	}
	if s.CurrentUser() != nil {
		t.Error("fresh store has a user")
	}
}

func TestLoginPersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	tok := makeToken(t, time.Now().Add(time.Hour))

	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	user := &User{ID: 7, Username: "maria", FirstName: "María", LastName: "García", Initials: "MG"}
	if err := s.Login(tok, user); err != nil {
		t.Fatalf("Login: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !reopened.IsAuthenticated() {
		t.Error("persisted session not authenticated after reopen")
	}
	if got := reopened.CurrentUser(); got == nil || got.Username != "maria" {
		t.Errorf("CurrentUser() = %+v, want maria", got)
	}
	if reopened.Token() != tok {
		t.Error("token not round-tripped")
	}
}

func TestOpen_ExpiredTokenClearedSilently(t *testing.T) {
	dir := t.TempDir()
	tok := makeToken(t, time.Now().Add(-time.Minute))

	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Login(tok, &User{ID: 1}); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("Open with expired token: %v", err)
	}
	if reopened.IsAuthenticated() {
		t.Error("expired session reported authenticated")
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); !os.IsNotExist(err) {
		t.Error("expired session file not removed")
	}
}

func TestLogout(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Login(makeToken(t, time.Now().Add(time.Hour)), &User{ID: 1}); err != nil {
		t.Fatal(err)
	}

	users, cancel := s.Users().Subscribe()
	defer cancel()
	<-users // replayed current user

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("authenticated after logout")
	}
	if u := <-users; u != nil {
		t.Errorf("subscribers saw %+v after logout, want nil", u)
	}
	// logging out twice is fine
	if err := s.Logout(); err != nil {
		t.Errorf("second Logout: %v", err)
	}
}

func TestLogin_EmptyTokenRejected(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Login("", &User{}); err == nil {
		t.Error("Login accepted an empty token")
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"future exp", makeToken(t, now.Add(time.Hour)), false},
		{"past exp", makeToken(t, now.Add(-time.Hour)), true},
		{"not a jwt", "garbage", true},
		{"two segments", "a.b", true},
		{"bad payload", "x." + base64.RawURLEncoding.EncodeToString([]byte("{")) + ".y", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenExpired(tt.token, now); got != tt.want {
				t.Errorf("tokenExpired = %v, want %v", got, tt.want)
			}
		})
	}
}
