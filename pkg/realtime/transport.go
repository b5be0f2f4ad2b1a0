// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package realtime

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-stomp/stomp/v3"
	"github.com/gorilla/websocket"
)

// Conn is one live broker connection. The production implementation is
// STOMP over WebSocket; tests inject fakes.
type Conn interface {
	// Subscribe opens a topic subscription. The returned channel
	// yields raw frame bodies and is closed when the subscription or
	// the connection dies.
	Subscribe(destination string) (<-chan []byte, error)

	// Disconnect closes the connection; all subscription channels
	// close as a consequence.
	Disconnect() error
}

// Dialer opens a broker connection, authenticating with the given
// bearer token ("" for anonymous).
type Dialer func(ctx context.Context, url, token string) (Conn, error)

// StompDialer returns the production dialer: a WebSocket to the
// broker endpoint with STOMP framing on top.
func StompDialer() Dialer {
	return func(ctx context.Context, url, token string) (Conn, error) {
		ws, resp, err := websocket.DefaultDialer.DialContext(ctx, url, http.Header{})
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		if err != nil {
			return nil, fmt.Errorf("dial websocket: %w", err)
		}

		opts := []func(*stomp.Conn) error{
			stomp.ConnOpt.AcceptVersion(stomp.V12),
		}
		if token != "" {
			opts = append(opts, stomp.ConnOpt.Header("Authorization", "Bearer "+token))
		}

		sc, err := stomp.Connect(newWSStream(ws), opts...)
		if err != nil {
			ws.Close()
			return nil, fmt.Errorf("stomp connect: %w", err)
		}
		return &stompConn{stomp: sc, ws: ws}, nil
	}
}

// stompConn adapts a go-stomp session to the Conn interface.
type stompConn struct {
	stomp *stomp.Conn
	ws    *websocket.Conn
}

func (c *stompConn) Subscribe(destination string) (<-chan []byte, error) {
	sub, err := c.stomp.Subscribe(destination, stomp.AckAuto)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", destination, err)
	}

	out := make(chan []byte, 32)
	go func() {
		defer close(out)
		for msg := range sub.C {
			if msg.Err != nil {
				return
			}
			out <- msg.Body
		}
	}()
	return out, nil
}

func (c *stompConn) Disconnect() error {
	err := c.stomp.Disconnect()
	if closeErr := c.ws.Close(); err == nil {
		err = closeErr
	}
	return err
}

// wsStream exposes a WebSocket connection as the byte stream go-stomp
// expects. Each Write becomes one text message; Read drains incoming
// messages in order.
type wsStream struct {
	ws     *websocket.Conn
	reader io.Reader
}

func newWSStream(ws *websocket.Conn) *wsStream {
	return &wsStream{ws: ws}
}

func (s *wsStream) Read(p []byte) (int, error) {
	for {
		if s.reader == nil {
			_, r, err := s.ws.NextReader()
			if err != nil {
				return 0, err
			}
			s.reader = r
		}
		n, err := s.reader.Read(p)
		if err == io.EOF {
			s.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (s *wsStream) Write(p []byte) (int, error) {
	if err := s.ws.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *wsStream) Close() error {
	return s.ws.Close()
}
