package cmd

import (
	"fmt"

	"github.com/sahibbilal/ollaama-gpt/internal/api"
	"github.com/spf13/cobra"
)

var conversationsCmd = &cobra.Command{
	Use:     "conversations",
	Aliases: []string{"chats"},
	Short:   "List saved conversations",
	Long: `List conversations stored by the backend.

Examples:
  ollaama conversations              # List saved conversations
  ollaama conversations new "Title"  # Create an empty conversation
  ollaama conversations show <id>    # Print a conversation transcript
  ollaama conversations delete <id>  # Delete a conversation
  ollaama --resume <id>              # Resume one interactively`,
	RunE: runConversations,
}

var conversationsNewCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create an empty conversation",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConversationsNew,
}

var conversationsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a conversation transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runConversationsShow,
}

var conversationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runConversationsDelete,
}

func init() {
	rootCmd.AddCommand(conversationsCmd)
	conversationsCmd.AddCommand(conversationsNewCmd)
	conversationsCmd.AddCommand(conversationsShowCmd)
	conversationsCmd.AddCommand(conversationsDeleteCmd)
}

func runConversations(cmd *cobra.Command, args []string) error {
	_, client, err := connectBackend(cmd.Context())
	if err != nil {
		return err
	}

	summaries, err := client.ListConversations(cmd.Context())
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("No saved conversations.")
		return nil
	}

	fmt.Printf("Saved conversations (%d):\n\n", len(summaries))
	for _, s := range summaries {
		title := s.Title
		if title == "" {
			title = "Untitled chat"
		}
		fmt.Printf("  %-36s  %-40s  %s\n", s.ID, title, s.UpdatedAt)
	}

	return nil
}

func runConversationsNew(cmd *cobra.Command, args []string) error {
	cfg, client, err := connectBackend(cmd.Context())
	if err != nil {
		return err
	}

	title := ""
	if len(args) > 0 {
		title = args[0]
	}
	modelName := model
	if modelName == "" {
		modelName = cfg.DefaultModel
	}

	conv, err := client.NewConversation(cmd.Context(), title, modelName)
	if err != nil {
		return err
	}

	fmt.Printf("Created conversation %s\n", conv.ID)
	fmt.Printf("Resume it with 'ollaama --resume %s'\n", conv.ID)
	return nil
}

func runConversationsShow(cmd *cobra.Command, args []string) error {
	_, client, err := connectBackend(cmd.Context())
	if err != nil {
		return err
	}

	conv, err := client.GetConversation(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if conv.Title != "" {
		fmt.Printf("%s (%s)\n\n", conv.Title, conv.Model)
	}

	for _, msg := range conv.Messages {
		if msg.Role == api.RoleUser {
			fmt.Printf("You: %s\n\n", msg.Content)
		} else {
			fmt.Printf("Assistant: %s\n\n", msg.Content)
		}
	}

	return nil
}

func runConversationsDelete(cmd *cobra.Command, args []string) error {
	_, client, err := connectBackend(cmd.Context())
	if err != nil {
		return err
	}

	if err := client.DeleteConversation(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted conversation %s.\n", args[0])
	return nil
}
