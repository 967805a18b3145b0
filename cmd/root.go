package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahibbilal/ollaama-gpt/internal/api"
	"github.com/sahibbilal/ollaama-gpt/internal/config"
	"github.com/spf13/cobra"
)

var (
	model      string
	prompt     string
	backendURL string
	resumeID   string
	resumeLast bool
)

var rootCmd = &cobra.Command{
	Use:   "ollaama",
	Short: "A terminal chat client for locally hosted models",
	Long: `Ollaama GPT is a terminal chat client for models served by a local
Ollama backend. Conversations are stored by the backend and can be
resumed, edited, and regenerated.

Examples:
  ollaama                              # Interactive chat mode
  ollaama --model mistral              # Chat with a specific model
  ollaama --prompt "Hello, world!"     # Single-turn mode
  ollaama --resume <conversation-id>   # Resume a saved conversation
  ollaama --last                       # Resume the most recent conversation`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := connectBackend(cmd.Context())
		if err != nil {
			return err
		}

		// Use default model if not specified
		modelName := model
		if modelName == "" {
			modelName = cfg.DefaultModel
		}

		// Interactive chat mode when no prompt provided
		if prompt == "" {
			id := resumeID
			if id == "" && resumeLast {
				id, err = lastConversationID(cmd.Context(), client)
				if err != nil {
					return err
				}
			}
			return runChat(client, modelName, id)
		}

		// Single-turn mode
		return runPrompt(cmd.Context(), client, modelName, prompt)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "", "Model to use (default: "+config.DefaultModel+")")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "Backend base URL (default: "+config.DefaultBackendURL+")")
	rootCmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Prompt for single-turn mode (omit for interactive chat)")
	rootCmd.Flags().StringVarP(&resumeID, "resume", "r", "", "Conversation ID to resume")
	rootCmd.Flags().BoolVarP(&resumeLast, "last", "l", false, "Resume the most recently updated conversation")
}

func Execute() error {
	return rootCmd.Execute()
}

// connectBackend loads the config, builds a client for the configured
// backend and waits for it to come up.
func connectBackend(ctx context.Context) (*config.Config, api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	client := newBackendClient(cfg)
	if err := client.WaitReady(ctx, cfg.ReadyAttempts, cfg.ReadyInterval()); err != nil {
		return nil, nil, err
	}

	return cfg, client, nil
}

// lastConversationID returns the most recently updated conversation.
// The backend lists conversations newest first.
func lastConversationID(ctx context.Context, client api.Client) (string, error) {
	summaries, err := client.ListConversations(ctx)
	if err != nil {
		return "", err
	}
	if len(summaries) == 0 {
		return "", errors.New("no saved conversations to resume")
	}
	return summaries[0].ID, nil
}

// newBackendClient builds a client without probing the backend. The
// --backend flag wins over the configured URL.
func newBackendClient(cfg *config.Config) api.Client {
	base := backendURL
	if base == "" {
		base = cfg.BackendURL
	}
	return api.DefaultClient(base)
}
