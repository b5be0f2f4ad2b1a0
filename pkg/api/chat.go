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

// ChatClient wraps the group chat endpoints. Sending goes over HTTP;
// receiving in real time is the realtime package's job.
type ChatClient struct {
	c *Client
}

// Messages returns the chat history of a group.
func (ch *ChatClient) Messages(ctx context.Context, groupID int) ([]ChatMessage, error) {
	var out []ChatMessage
	if err := ch.c.getJSON(ctx, fmt.Sprintf("/chat/grupo/%d/mensajes", groupID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Send posts a text message. The backend expects a multipart form with
// a single "mensaje" field.
func (ch *ChatClient) Send(ctx context.Context, groupID int, text string) (*StatusMessage, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("mensaje", text); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	var out StatusMessage
	path := fmt.Sprintf("/chat/grupo/%d/enviar", groupID)
	if err := ch.c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendImage posts an image message with an optional caption.
func (ch *ChatClient) SendImage(ctx context.Context, groupID int, filename string, image io.Reader, caption string) (*StatusMessage, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("imagen", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if caption != "" {
		if err := w.WriteField("descripcion", caption); err != nil {
			return nil, fmt.Errorf("build form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	var out StatusMessage
	path := fmt.Sprintf("/chat/grupo/%d/enviar-imagen", groupID)
	if err := ch.c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMessage removes one message from the group chat.
func (ch *ChatClient) DeleteMessage(ctx context.Context, groupID, messageID int) error {
	path := fmt.Sprintf("/chat/grupo/%d/mensaje/%d", groupID, messageID)
	return ch.c.sendJSON(ctx, http.MethodDelete, path, nil, nil)
}
