package cmd

import (
	"fmt"

	"github.com/sahibbilal/ollaama-gpt/internal/tui/picker"
	"github.com/spf13/cobra"
)

var (
	refreshCatalog bool
	showAvailable  bool
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List installed and available models",
	Long: `List the models installed on the local backend.

Examples:
  ollaama models                     # List installed models
  ollaama models --all               # Include models available to install
  ollaama models --refresh           # Refresh the catalog from the library
  ollaama models install mistral     # Download a model
  ollaama models remove mistral      # Remove an installed model`,
	RunE: runModels,
}

var modelsInstallCmd = &cobra.Command{
	Use:   "install <model>",
	Short: "Download a model through the backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsInstall,
}

var modelsRemoveCmd = &cobra.Command{
	Use:     "remove <model>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove an installed model",
	Args:    cobra.ExactArgs(1),
	RunE:    runModelsRemove,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsInstallCmd)
	modelsCmd.AddCommand(modelsRemoveCmd)
	modelsCmd.Flags().BoolVar(&refreshCatalog, "refresh", false, "Refresh the model catalog from the library")
	modelsCmd.Flags().BoolVar(&showAvailable, "all", false, "Include models available to install")
}

func runModels(cmd *cobra.Command, args []string) error {
	_, client, err := connectBackend(cmd.Context())
	if err != nil {
		return err
	}

	models, err := client.ListModels(cmd.Context(), refreshCatalog)
	if err != nil {
		return err
	}

	if len(models.Installed) == 0 {
		fmt.Println("No models installed.")
	} else {
		fmt.Printf("Installed models (%d):\n\n", len(models.Installed))
		for _, m := range models.Installed {
			fmt.Printf("  %-30s %s\n", m.Name, picker.FormatSize(m.Size))
		}
	}

	if showAvailable && len(models.Catalog) > 0 {
		fmt.Printf("\nAvailable to install (%d, * = installed):\n\n", len(models.Catalog))
		for _, m := range models.Catalog {
			marker := " "
			if m.Installed {
				marker = "*"
			}
			fmt.Printf("  %s %-28s %-14s %s\n", marker, m.Name, m.Category, m.Size)
		}
	}

	return nil
}

func runModelsInstall(cmd *cobra.Command, args []string) error {
	_, client, err := connectBackend(cmd.Context())
	if err != nil {
		return err
	}

	name := args[0]
	if installed, err := client.ModelInstalled(cmd.Context(), name); err == nil && installed {
		fmt.Printf("%s is already installed.\n", name)
		return nil
	}

	fmt.Printf("Installing %s...\n", name)

	reader, err := client.InstallModel(cmd.Context(), name)
	if err != nil {
		return err
	}
	defer reader.Close()

	lastStatus := ""
	for {
		chunk, err := reader.Next()
		if err != nil {
			return err
		}
		if chunk == nil {
			break
		}
		if chunk.Status != "" && chunk.Status != lastStatus {
			fmt.Printf("  %s\n", chunk.Status)
			lastStatus = chunk.Status
		}
		if chunk.Done {
			break
		}
	}

	fmt.Printf("Installed %s.\n", name)
	return nil
}

func runModelsRemove(cmd *cobra.Command, args []string) error {
	_, client, err := connectBackend(cmd.Context())
	if err != nil {
		return err
	}

	name := args[0]
	if err := client.DeleteModel(cmd.Context(), name); err != nil {
		return err
	}

	fmt.Printf("Removed %s.\n", name)
	return nil
}
