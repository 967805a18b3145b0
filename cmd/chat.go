package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sahibbilal/ollaama-gpt/internal/api"
	"github.com/sahibbilal/ollaama-gpt/internal/config"
	"github.com/sahibbilal/ollaama-gpt/internal/session"
	"github.com/sahibbilal/ollaama-gpt/internal/store"
	"github.com/sahibbilal/ollaama-gpt/internal/tui"
	"github.com/sahibbilal/ollaama-gpt/internal/tui/chat"
)

// runChat starts the interactive TUI.
func runChat(client api.Client, modelName, resumeID string) error {
	renderer, err := tui.NewMarkdownRenderer(config.DefaultTerminalWidth)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	st := store.New(renderer)
	controller := session.New(session.Config{
		Client: client,
		Store:  st,
		Model:  modelName,
	})

	if resumeID != "" {
		if err := controller.Load(context.Background(), resumeID); err != nil {
			return err
		}
	}

	history, err := config.LoadHistory()
	if err != nil {
		history = &config.InputHistory{}
	}

	runErr := chat.Run(chat.Config{
		Client:     client,
		Controller: controller,
		History:    history,
		Renderer:   renderer,
	})

	if err := history.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save input history: %v\n", err)
	}

	return runErr
}

// runPrompt sends a single message and streams the reply to stdout.
func runPrompt(ctx context.Context, client api.Client, modelName, text string) error {
	reader, err := client.ChatStream(ctx, &api.ChatRequest{
		Message: text,
		Model:   modelName,
	})
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		chunk, err := reader.Next()
		if err != nil {
			fmt.Println()
			return err
		}
		if chunk == nil {
			break
		}
		if chunk.Content != "" {
			fmt.Print(chunk.Content)
		}
		if chunk.Done {
			break
		}
	}

	fmt.Println()
	return nil
}
