// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rumbo-travel/rumbo/cmd/rumbo/internal/tui"
	"github.com/rumbo-travel/rumbo/pkg/api"
	"github.com/rumbo-travel/rumbo/pkg/ux"
	"github.com/spf13/cobra"
)

// runChat opens the live chat view: history, the broker stream, and a
// composer, all inside one terminal UI.
func runChat(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if !ux.IsInteractive() {
		return fmt.Errorf("the live chat needs an interactive terminal; use `rumbo chat history` instead")
	}
	groupID, err := parseID(args[0], "group")
	if err != nil {
		return err
	}

	loadCtx, cancelLoad := apiCtx(cmd.Context())
	detail, err := app.API.Groups().Detail(loadCtx, groupID)
	if err != nil {
		cancelLoad()
		return fmt.Errorf("could not open group %d: %s", groupID, userMessage(err))
	}
	history, err := app.API.Chat().Messages(loadCtx, groupID)
	cancelLoad()
	if err != nil {
		return fmt.Errorf("could not load the chat history: %s", userMessage(err))
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	channel := app.Realtime()
	channel.Connect(ctx)
	defer channel.Disconnect()

	events, unsubscribe := channel.SubscribeGroup(groupID)
	defer unsubscribe()

	me := app.Session.CurrentUser()
	return tui.RunChat(ctx, tui.ChatConfig{
		Title:   detail.Group.TripName,
		GroupID: groupID,
		SelfID:  me.ID,
		History: history,
		Events:  events,
		States:  channel.State(),
		Send: func(sendCtx context.Context, text string) error {
			_, err := app.API.Chat().Send(sendCtx, groupID, text)
			return err
		},
		Delete: func(delCtx context.Context, messageID int) error {
			return app.API.Chat().DeleteMessage(delCtx, groupID, messageID)
		},
	})
}

func runChatHistory(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	groupID, err := parseID(args[0], "group")
	if err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	messages, err := app.API.Chat().Messages(ctx, groupID)
	if err != nil {
		return fmt.Errorf("could not load the chat history: %s", userMessage(err))
	}
	if printJSON(messages) {
		return nil
	}
	if len(messages) == 0 {
		ux.Info("Este chat todavía no tiene mensajes.")
		return nil
	}

	me := app.Session.CurrentUser()
	for _, m := range messages {
		printChatMessage(m, me.ID)
	}
	return nil
}

func runChatSend(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	groupID, err := parseID(args[0], "group")
	if err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		return fmt.Errorf("the message is empty")
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	if _, err := app.API.Chat().Send(ctx, groupID, text); err != nil {
		return fmt.Errorf("could not send the message: %s", userMessage(err))
	}
	ux.Success("Mensaje enviado.")
	return nil
}

func runChatSendImage(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	groupID, err := parseID(args[0], "group")
	if err != nil {
		return err
	}

	path := args[1]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	spin := ux.NewSpinner("Subiendo la imagen...")
	spin.Start()
	_, err = app.API.Chat().SendImage(ctx, groupID, filepath.Base(path), f, chatImageCaption)
	if err != nil {
		spin.StopWithError(err)
		return fmt.Errorf("could not send the image: %s", userMessage(err))
	}
	spin.StopWithSuccess("Imagen enviada.")
	return nil
}

func runChatDelete(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	groupID, err := parseID(args[0], "group")
	if err != nil {
		return err
	}
	messageID, err := parseID(args[1], "message")
	if err != nil {
		return err
	}

	ctx, cancel := apiCtx(cmd.Context())
	defer cancel()

	if err := app.API.Chat().DeleteMessage(ctx, groupID, messageID); err != nil {
		return fmt.Errorf("could not delete the message: %s", userMessage(err))
	}
	ux.Success("Mensaje eliminado.")
	return nil
}

func printChatMessage(m api.ChatMessage, selfID int) {
	sender := m.Sender
	if m.SenderID == selfID {
		sender = ux.Styles.Highlight.Render("tú")
	} else {
		sender = ux.Styles.Bold.Render(sender)
	}
	line := fmt.Sprintf("%s %s  %s", ux.Styles.Muted.Render(m.SentAt), sender, m.Text)
	if m.ImageURL != "" {
		line += ux.Styles.Muted.Render(fmt.Sprintf(" [imagen: %s]", app.API.ImageURL(m.ImageURL)))
	}
	fmt.Println(line)
}
