// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumbo-travel/rumbo/pkg/logging"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, opts ...func(*Config)) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := Config{
		BaseURL:   srv.URL + "/api",
		AssetsURL: "https://cdn.example.com",
		Logger:    logging.New(logging.Config{Quiet: true}),
	}
	for _, o := range opts {
		o(&cfg)
	}
	c, err := New(cfg)
	require.NoError(t, err)
	return c, srv
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestSearch_ThreadsQueryParameters(t *testing.T) {
	var gotQuery map[string][]string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"grupos":[{"idGrupo":1,"nombreViaje":"Ruta andina"}],"totalPages":1,"totalElements":1,"currentPage":0,"size":10}`))
	}))

	page, err := c.Groups().Search(context.Background(), Filters{
		Destination: "Cusco",
		StartDate:   "2026-10-01",
		Sort:        "fechaInicio",
		Page:        2,
		Size:        10,
	})
	require.NoError(t, err)
	require.Len(t, page.Groups, 1)
	assert.Equal(t, "Ruta andina", page.Groups[0].TripName)

	assert.Equal(t, "Cusco", gotQuery["destinoPrincipal"][0])
	assert.Equal(t, "2026-10-01", gotQuery["fechaInicio"][0])
	assert.Equal(t, "fechaInicio", gotQuery["sort"][0])
	assert.Equal(t, "2", gotQuery["page"][0])
	assert.Equal(t, "10", gotQuery["size"][0])
	assert.NotContains(t, gotQuery, "fechaFin")
}

func TestDo_SendsBearerAndRequestID(t *testing.T) {
	var auth, reqID string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		reqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"authenticated":true}`))
	}), func(cfg *Config) { cfg.Tokens = staticTokens("tok123") })

	_, err := c.Home().Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", auth)
	assert.NotEmpty(t, reqID)
}

func TestMapError_UsesServerMessage(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", 400, `{"error":"Ya perteneces a este grupo"}`, "Ya perteneces a este grupo"},
		{"mensaje field", 409, `{"mensaje":"El grupo está cerrado"}`, "El grupo está cerrado"},
		{"no body", 500, ``, ""},
		{"html body", 502, `<html>bad gateway</html>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			_, err := c.Groups().Join(context.Background(), 5)
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			if tt.wantMsg == "" {
				assert.Equal(t, FallbackMessage, apiErr.UserMessage())
			} else {
				assert.Equal(t, tt.wantMsg, apiErr.UserMessage())
			}
		})
	}
}

func TestDo_UnauthorizedFiresHook(t *testing.T) {
	fired := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token inválido"}`))
	}), func(cfg *Config) { cfg.OnUnauthorized = func() { fired++ } })

	_, err := c.Profile().Own(context.Background())
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, fired)
}

func TestDecode_RejectsMalformedShape(t *testing.T) {
	// idGrupo missing: the group schema requires it.
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"grupo":{"nombreViaje":""},"itinerarios":[]}`))
	}))

	_, err := c.Groups().Detail(context.Background(), 3)
	assert.True(t, errors.Is(err, ErrBadResponse), "want ErrBadResponse, got %v", err)
}

func TestDecode_RejectsNonJSON(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))

	_, err := c.Trips().MyTrips(context.Background())
	assert.True(t, errors.Is(err, ErrBadResponse))
}

func TestImageURL(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"empty", "", ""},
		{"absolute http", "http://img.example.com/a.jpg", "http://img.example.com/a.jpg"},
		{"absolute https", "https://img.example.com/a.jpg", "https://img.example.com/a.jpg"},
		{"prefixed path", "/uploads/peru.jpg", "https://cdn.example.com/uploads/peru.jpg"},
		{"bare filename", "peru.jpg", "https://cdn.example.com/uploads/peru.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ImageURL(tt.ref))
		})
	}
}

func TestChat_SendIsMultipart(t *testing.T) {
	var gotText string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotText = r.FormValue("mensaje")
		w.Write([]byte(`{"mensaje":"enviado"}`))
	}))

	out, err := c.Chat().Send(context.Background(), 9, "¿a qué hora salimos?")
	require.NoError(t, err)
	assert.Equal(t, "enviado", out.Message)
	assert.Equal(t, "¿a qué hora salimos?", gotText)
}

func TestAuth_CheckUsername(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/check-username", r.URL.Path)
		assert.Equal(t, "maria", r.URL.Query().Get("username"))
		w.Write([]byte(`{"available":false}`))
	}))

	available, err := c.Auth().CheckUsername(context.Background(), "maria")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestHome_FetchPublishesToStore(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"idUsuario":4,"username":"maria","notificacionesNoLeidas":2,"authenticated":true}`))
	}))

	home := c.Home()
	ch, cancel := home.Data().Subscribe()
	defer cancel()

	_, err := home.Fetch(context.Background())
	require.NoError(t, err)

	got := <-ch
	assert.Equal(t, 4, got.UserID)
	assert.Equal(t, 2, got.UnreadNotifications)

	// Two accessors share the same store.
	again, ok := c.Home().Data().Get()
	require.True(t, ok)
	assert.Equal(t, got, again)
}
