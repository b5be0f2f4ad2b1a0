// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// ProfileClient wraps the user profile endpoints.
type ProfileClient struct {
	c *Client
}

// Own returns the authenticated user's profile.
func (p *ProfileClient) Own(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := p.c.getJSON(ctx, "/perfil", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByID returns another user's (public) profile.
func (p *ProfileClient) ByID(ctx context.Context, userID int) (*Profile, error) {
	var out Profile
	if err := p.c.getJSON(ctx, fmt.Sprintf("/perfil/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits the authenticated user's profile and returns the fresh
// record.
func (p *ProfileClient) Update(ctx context.Context, upd ProfileUpdate) (*Profile, error) {
	var out Profile
	if err := p.c.sendJSON(ctx, http.MethodPut, "/perfil", upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadAvatar replaces the profile image.
func (p *ProfileClient) UploadAvatar(ctx context.Context, filename string, image io.Reader) (*StatusMessage, error) {
	return p.upload(ctx, "/perfil/imagen-perfil", filename, image)
}

// UploadCover replaces the cover image.
func (p *ProfileClient) UploadCover(ctx context.Context, filename string, image io.Reader) (*StatusMessage, error) {
	return p.upload(ctx, "/perfil/imagen-portada", filename, image)
}

func (p *ProfileClient) upload(ctx context.Context, path, filename string, image io.Reader) (*StatusMessage, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("imagen", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	var out StatusMessage
	if err := p.c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
