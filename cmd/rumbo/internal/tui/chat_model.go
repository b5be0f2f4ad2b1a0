// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rumbo-travel/rumbo/pkg/api"
	"github.com/rumbo-travel/rumbo/pkg/realtime"
	"github.com/rumbo-travel/rumbo/pkg/store"
	"github.com/rumbo-travel/rumbo/pkg/ux"
)

// =============================================================================
// Config
// =============================================================================

// ChatConfig wires the chat view to its group: the loaded history, the
// live event stream, and the send/delete callbacks.
type ChatConfig struct {
	Title   string
	GroupID int
	SelfID  int

	History []api.ChatMessage
	Events  <-chan realtime.ChatEvent
	States  *store.Broadcast[realtime.State]

	Send   func(ctx context.Context, text string) error
	Delete func(ctx context.Context, messageID int) error
}

// =============================================================================
// Messages
// =============================================================================

type chatEventMsg struct {
	event realtime.ChatEvent
	ok    bool
}

type connStateMsg struct {
	state realtime.State
	ok    bool
}

type actionDoneMsg struct{ err error }

// =============================================================================
// Model
// =============================================================================

// ChatModel renders the group chat: scrollback on top, a one-line
// composer at the bottom, and the connection state in the header.
type ChatModel struct {
	cfg      ChatConfig
	messages []api.ChatMessage

	viewport viewport.Model
	input    textinput.Model
	ready    bool

	connState realtime.State
	states    <-chan realtime.State
	notice    string
	quitting  bool

	width  int
	height int
}

// NewChatModel builds the chat model. states is the connection-state
// subscription feed; the caller owns its cancel.
func NewChatModel(cfg ChatConfig, states <-chan realtime.State) ChatModel {
	in := textinput.New()
	in.Placeholder = "Escribe un mensaje… (/borrar <id> elimina uno tuyo)"
	in.CharLimit = 500
	in.Focus()

	return ChatModel{
		cfg:       cfg,
		messages:  append([]api.ChatMessage(nil), cfg.History...),
		input:     in,
		states:    states,
		connState: realtime.StateConnecting,
	}
}

// Init implements tea.Model.
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitEvent(), m.waitState())
}

// Update implements tea.Model.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 3
		vpHeight := m.height - headerHeight - footerHeight
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport(true)
		return m, nil

	case chatEventMsg:
		if !msg.ok {
			m.notice = "Se cerró el canal del grupo."
			return m, nil
		}
		m.applyEvent(msg.event)
		m.refreshViewport(true)
		return m, m.waitEvent()

	case connStateMsg:
		if !msg.ok {
			return m, nil
		}
		m.connState = msg.state
		return m, m.waitState()

	case actionDoneMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.notice = ""
			return m, m.actionCmd(text)

		case "up", "pgup":
			m.viewport.HalfViewUp()
			return m, nil

		case "down", "pgdown":
			m.viewport.HalfViewDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m ChatModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Cargando el chat…\n"
	}

	var b strings.Builder
	b.WriteString(chatTitleStyle.Render(m.cfg.Title))
	b.WriteString("  " + m.renderConnState() + "\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(errStyle.Render(m.notice) + "\n")
	}
	b.WriteString(m.input.View())
	return b.String()
}

// =============================================================================
// Behavior
// =============================================================================

// applyEvent reconciles one broker event into the message list.
func (m *ChatModel) applyEvent(ev realtime.ChatEvent) {
	if ev.Deleted {
		kept := m.messages[:0]
		for _, msg := range m.messages {
			if msg.ID != ev.MessageID {
				kept = append(kept, msg)
			}
		}
		m.messages = kept
		return
	}
	if ev.Message == nil {
		return
	}
	// The broker may replay a message we already hold.
	for _, msg := range m.messages {
		if msg.ID == ev.Message.ID {
			return
		}
	}
	m.messages = append(m.messages, *ev.Message)
}

// actionCmd turns composer input into a send, or a delete for the
// /borrar escape.
func (m ChatModel) actionCmd(text string) tea.Cmd {
	cfg := m.cfg
	if id, ok := parseDeleteCommand(text); ok {
		return func() tea.Msg {
			return actionDoneMsg{err: cfg.Delete(context.Background(), id)}
		}
	}
	return func() tea.Msg {
		return actionDoneMsg{err: cfg.Send(context.Background(), text)}
	}
}

func parseDeleteCommand(text string) (int, bool) {
	rest, ok := strings.CutPrefix(text, "/borrar ")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (m ChatModel) waitEvent() tea.Cmd {
	events := m.cfg.Events
	return func() tea.Msg {
		ev, ok := <-events
		return chatEventMsg{event: ev, ok: ok}
	}
}

func (m ChatModel) waitState() tea.Cmd {
	states := m.states
	return func() tea.Msg {
		st, ok := <-states
		return connStateMsg{state: st, ok: ok}
	}
}

func (m *ChatModel) refreshViewport(toBottom bool) {
	if !m.ready {
		return
	}
	lines := make([]string, 0, len(m.messages))
	for _, msg := range m.messages {
		lines = append(lines, m.renderMessage(msg))
	}
	if len(lines) == 0 {
		lines = append(lines, mutedStyle.Render("Todavía no hay mensajes. ¡Rompe el hielo!"))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if toBottom {
		m.viewport.GotoBottom()
	}
}

// =============================================================================
// Rendering
// =============================================================================

var (
	chatTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ux.ColorCoralBright)
	selfStyle      = lipgloss.NewStyle().Bold(true).Foreground(ux.ColorCoralBright)
	senderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ux.ColorSeaBlue)
)

func (m ChatModel) renderConnState() string {
	switch m.connState {
	case realtime.StateConnected:
		return tabValidStyle.Render("● en línea")
	case realtime.StateBackoff, realtime.StateConnecting:
		return warnStyle.Render("● reconectando…")
	default:
		return mutedStyle.Render("● desconectado")
	}
}

func (m ChatModel) renderMessage(msg api.ChatMessage) string {
	sender := senderStyle.Render(msg.Sender)
	if msg.SenderID == m.cfg.SelfID {
		sender = selfStyle.Render("tú")
	}
	line := fmt.Sprintf("%s %s %s  %s",
		mutedStyle.Render(fmt.Sprintf("#%d", msg.ID)),
		mutedStyle.Render(msg.SentAt), sender, msg.Text)
	if msg.ImageURL != "" {
		line += mutedStyle.Render(" [imagen]")
	}
	return line
}

// =============================================================================
// Entry point
// =============================================================================

// RunChat runs the live chat view until the user quits or ctx ends.
func RunChat(ctx context.Context, cfg ChatConfig) error {
	states, cancel := cfg.States.Subscribe()
	defer cancel()

	p := tea.NewProgram(NewChatModel(cfg, states), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("chat failed: %w", err)
	}
	return nil
}
