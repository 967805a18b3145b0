package cmd

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/sahibbilal/ollaama-gpt/internal/api"
	"github.com/sahibbilal/ollaama-gpt/internal/markdown"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <conversation-id>",
	Short: "Export a conversation to an HTML file",
	Long: `Export a saved conversation as a standalone HTML page. Assistant
replies are rendered from markdown; user messages are kept verbatim.

Examples:
  ollaama export <id>                 # Write <id>.html
  ollaama export <id> -o chat.html    # Write to a specific file`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: <conversation-id>.html)")
}

func runExport(cmd *cobra.Command, args []string) error {
	_, client, err := connectBackend(cmd.Context())
	if err != nil {
		return err
	}

	conv, err := client.GetConversation(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := exportOutput
	if out == "" {
		out = conv.ID + ".html"
	}

	if err := os.WriteFile(out, []byte(exportHTML(conv)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Printf("Exported %d messages to %s\n", len(conv.Messages), out)
	return nil
}

// exportHTML renders a conversation as a standalone HTML page.
func exportHTML(conv *api.Conversation) string {
	title := conv.Title
	if title == "" {
		title = "Conversation"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	sb.WriteString("<style>\n")
	sb.WriteString("body { font-family: sans-serif; max-width: 48em; margin: 2em auto; padding: 0 1em; }\n")
	sb.WriteString(".message { margin-bottom: 1.5em; }\n")
	sb.WriteString(".user { border-left: 3px solid #4ade80; padding-left: 1em; }\n")
	sb.WriteString(".assistant { border-left: 3px solid #60a5fa; padding-left: 1em; }\n")
	sb.WriteString("pre { background: #f4f4f5; padding: 1em; overflow-x: auto; }\n")
	sb.WriteString("code { background: #f4f4f5; padding: 0.1em 0.3em; }\n")
	sb.WriteString("</style>\n</head>\n<body>\n")
	sb.WriteString("<h1>" + html.EscapeString(title) + "</h1>\n")
	if conv.Model != "" {
		sb.WriteString("<p><em>" + html.EscapeString(conv.Model) + "</em></p>\n")
	}

	for _, msg := range conv.Messages {
		if msg.Role == api.RoleUser {
			sb.WriteString("<div class=\"message user\">\n<strong>You</strong>\n")
			sb.WriteString("<p>" + html.EscapeString(msg.Content) + "</p>\n</div>\n")
		} else {
			sb.WriteString("<div class=\"message assistant\">\n<strong>Assistant</strong>\n")
			sb.WriteString(markdown.Format(msg.Content))
			sb.WriteString("\n</div>\n")
		}
	}

	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}
