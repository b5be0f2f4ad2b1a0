// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package realtime bridges the backend's push channels (group chat,
// per-user notifications) into subscribable streams.
//
// One Channel multiplexes any number of topics over a single broker
// connection. Connection state is exposed as an observable value, and
// a lost connection is retried with jittered exponential backoff; on
// reconnect all active topics are resubscribed. Callers that only care
// about frames never see the reconnect dance.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rumbo-travel/rumbo/pkg/api"
	"github.com/rumbo-travel/rumbo/pkg/logging"
	"github.com/rumbo-travel/rumbo/pkg/store"
)

// State describes the connection to the broker.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateBackoff
)

// String returns a lowercase state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateBackoff:
		return "backoff"
	default:
		return "unknown"
	}
}

// TokenSource supplies the bearer token used at connect time.
type TokenSource interface {
	Token() string
}

// ChatEvent is one frame from a group's chat topics: either a new
// message or a deletion subscribers use to filter their local list.
type ChatEvent struct {
	Deleted   bool
	MessageID int
	Message   *api.ChatMessage
}

// NotificationEvent is one frame from the per-user notification queue.
type NotificationEvent struct {
	Deleted        bool
	NotificationID int
	Notification   *api.Notification
}

// deleteFrame is the wire shape on the delete topics.
type deleteFrame struct {
	MessageID      int `json:"idMensaje"`
	NotificationID int `json:"idNotificacion"`
}

// Config assembles a Channel.
type Config struct {
	// URL is the broker websocket endpoint.
	URL string

	// Tokens supplies the bearer token at connect time; nil connects
	// anonymously.
	Tokens TokenSource

	// Dialer opens broker connections. Defaults to StompDialer().
	Dialer Dialer

	// Backoff is the reconnect policy. Zero value means DefaultBackoff.
	Backoff Backoff

	// Logger receives connection diagnostics.
	Logger *logging.Logger
}

// Channel is a resilient, multiplexed broker connection.
type Channel struct {
	url     string
	tokens  TokenSource
	dial    Dialer
	backoff Backoff
	log     *logging.Logger
	state   *store.Broadcast[State]

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	conn    Conn
	errc    chan error
	topics  map[string]*topic
}

// New creates a Channel. Call Connect to bring it up.
func New(cfg Config) *Channel {
	dial := cfg.Dialer
	if dial == nil {
		dial = StompDialer()
	}
	backoff := cfg.Backoff
	if backoff.Base == 0 && backoff.Cap == 0 {
		backoff = DefaultBackoff()
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Default()
	}
	c := &Channel{
		url:     cfg.URL,
		tokens:  cfg.Tokens,
		dial:    dial,
		backoff: backoff,
		log:     log,
		state:   store.NewBroadcast[State](),
		topics:  make(map[string]*topic),
	}
	c.state.Set(StateDisconnected)
	return c
}

// State exposes the connection state as an observable value.
func (c *Channel) State() *store.Broadcast[State] { return c.state }

// Connect brings the channel up. Calling it while already running is a
// no-op. Connection failures are not returned here: they show up on
// the state observable and in the log, and are retried per the backoff
// policy until Disconnect or ctx cancellation.
func (c *Channel) Connect(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.stop = make(chan struct{})
	go c.run(ctx, c.stop)
}

// Disconnect tears the connection down and stops reconnecting.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	close(c.stop)
}

func (c *Channel) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *Channel) run(ctx context.Context, stop <-chan struct{}) {
	attempt := 0
	for {
		c.state.Set(StateConnecting)
		conn, err := c.dial(ctx, c.url, c.token())
		if err != nil {
			c.log.Warn("realtime connect failed", "error", err, "attempt", attempt)
			if !c.waitBackoff(ctx, stop, attempt) {
				return
			}
			attempt++
			continue
		}
		attempt = 0

		errc := make(chan error, 8)
		c.mu.Lock()
		c.conn = conn
		c.errc = errc
		for dest, tp := range c.topics {
			c.startPump(conn, dest, tp, errc)
		}
		c.mu.Unlock()
		c.state.Set(StateConnected)
		c.log.Info("realtime connected", "url", c.url)

		select {
		case <-ctx.Done():
			c.teardown(conn)
			return
		case <-stop:
			c.teardown(conn)
			return
		case err := <-errc:
			c.log.Warn("realtime connection lost", "error", err)
			c.mu.Lock()
			c.conn = nil
			c.mu.Unlock()
			_ = conn.Disconnect()
			if !c.waitBackoff(ctx, stop, attempt) {
				return
			}
			attempt++
		}
	}
}

func (c *Channel) teardown(conn Conn) {
	c.mu.Lock()
	c.conn = nil
	c.running = false
	c.mu.Unlock()
	if err := conn.Disconnect(); err != nil {
		c.log.Warn("realtime disconnect", "error", err)
	}
	c.state.Set(StateDisconnected)
}

// waitBackoff sleeps the policy delay. Returns false when the channel
// should stop instead of retrying.
func (c *Channel) waitBackoff(ctx context.Context, stop <-chan struct{}, attempt int) bool {
	c.state.Set(StateBackoff)
	delay := c.backoff.Delay(attempt)
	c.log.Debug("realtime backoff", "delay", delay, "attempt", attempt)
	select {
	case <-time.After(delay):
		return true
	case <-ctx.Done():
		c.finishStopped()
		return false
	case <-stop:
		c.finishStopped()
		return false
	}
}

func (c *Channel) finishStopped() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
	c.state.Set(StateDisconnected)
}

// startPump subscribes dest on conn and fans frames into the topic.
// Caller holds c.mu.
func (c *Channel) startPump(conn Conn, dest string, tp *topic, errc chan error) {
	frames, err := conn.Subscribe(dest)
	if err != nil {
		select {
		case errc <- err:
		default:
		}
		return
	}
	go func() {
		for b := range frames {
			tp.publish(b)
		}
		select {
		case errc <- fmt.Errorf("subscription %s closed", dest):
		default:
		}
	}()
}

// subscribeRaw registers interest in a destination and returns its raw
// frame stream. If the channel is connected the subscription starts
// immediately; otherwise it starts on the next (re)connect.
func (c *Channel) subscribeRaw(dest string) (<-chan json.RawMessage, func()) {
	c.mu.Lock()
	tp, exists := c.topics[dest]
	if !exists {
		tp = newTopic()
		c.topics[dest] = tp
		if c.conn != nil {
			c.startPump(c.conn, dest, tp, c.errc)
		}
	}
	ch, cancel := tp.subscribe()
	c.mu.Unlock()
	return ch, cancel
}

// SubscribeGroup returns the merged chat stream of a group: new
// messages plus deletions from the parallel delete topic, in arrival
// order. Cancel releases both subscriptions.
func (c *Channel) SubscribeGroup(groupID int) (<-chan ChatEvent, func()) {
	msgs, cancelMsgs := c.subscribeRaw(fmt.Sprintf("/topic/grupo/%d", groupID))
	dels, cancelDels := c.subscribeRaw(fmt.Sprintf("/topic/grupo/%d/eliminado", groupID))

	out := make(chan ChatEvent, 32)
	done := make(chan struct{})
	go func() {
		defer close(out)
		for {
			select {
			case <-done:
				return
			case b, ok := <-msgs:
				if !ok {
					msgs = nil
					continue
				}
				var msg api.ChatMessage
				if err := json.Unmarshal(b, &msg); err != nil {
					c.log.Warn("drop undecodable chat frame", "error", err)
					continue
				}
				select {
				case out <- ChatEvent{Message: &msg}:
				case <-done:
					return
				}
			case b, ok := <-dels:
				if !ok {
					dels = nil
					continue
				}
				var del deleteFrame
				if err := json.Unmarshal(b, &del); err != nil {
					c.log.Warn("drop undecodable delete frame", "error", err)
					continue
				}
				select {
				case out <- ChatEvent{Deleted: true, MessageID: del.MessageID}:
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			cancelMsgs()
			cancelDels()
		})
	}
	return out, cancel
}

// SubscribeUser returns the per-user notification stream, including
// deletions on the parallel delete topic.
func (c *Channel) SubscribeUser(userID int) (<-chan NotificationEvent, func()) {
	notifs, cancelNotifs := c.subscribeRaw(fmt.Sprintf("/topic/usuario/%d/notificaciones", userID))
	dels, cancelDels := c.subscribeRaw(fmt.Sprintf("/topic/usuario/%d/notificaciones/eliminado", userID))

	out := make(chan NotificationEvent, 32)
	done := make(chan struct{})
	go func() {
		defer close(out)
		for {
			select {
			case <-done:
				return
			case b, ok := <-notifs:
				if !ok {
					notifs = nil
					continue
				}
				var n api.Notification
				if err := json.Unmarshal(b, &n); err != nil {
					c.log.Warn("drop undecodable notification frame", "error", err)
					continue
				}
				select {
				case out <- NotificationEvent{Notification: &n}:
				case <-done:
					return
				}
			case b, ok := <-dels:
				if !ok {
					dels = nil
					continue
				}
				var del deleteFrame
				if err := json.Unmarshal(b, &del); err != nil {
					c.log.Warn("drop undecodable delete frame", "error", err)
					continue
				}
				select {
				case out <- NotificationEvent{Deleted: true, NotificationID: del.NotificationID}:
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			cancelNotifs()
			cancelDels()
		})
	}
	return out, cancel
}

// topic fans raw frames out to its subscribers. Frames received while
// a subscriber's buffer is full are dropped for that subscriber.
type topic struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan json.RawMessage
}

func newTopic() *topic {
	return &topic{subs: make(map[int]chan json.RawMessage)}
}

func (t *topic) publish(b []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ch := range t.subs {
		select {
		case ch <- json.RawMessage(b):
		default:
		}
	}
}

func (t *topic) subscribe() (<-chan json.RawMessage, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	ch := make(chan json.RawMessage, 32)
	t.subs[id] = ch
	cancel := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if c, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(c)
		}
	}
	return ch, cancel
}
