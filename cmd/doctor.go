package cmd

import (
	"fmt"

	"github.com/sahibbilal/ollaama-gpt/internal/config"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check backend and runtime health",
	Long: `Probe the backend and report the state of its runtime dependencies.
Unlike the other commands, doctor does not wait for the backend to come
up; an unreachable backend is part of the diagnosis.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := newBackendClient(cfg)

	health, err := client.Health(cmd.Context())
	if err != nil {
		fmt.Printf("Backend:  unreachable (%v)\n", err)
		fmt.Println("\nStart the backend and run 'ollaama doctor' again.")
		return err
	}

	status := "not ready"
	if health.Healthy() {
		status = "healthy"
	}
	fmt.Printf("Backend:  %s\n", status)

	connected := "not connected"
	if health.OllamaConnected {
		connected = "connected"
	}
	fmt.Printf("Ollama:   %s\n", connected)

	deps, err := client.Dependencies(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println("\nDependencies:")
	name := "ollama"
	if deps.Ollama.Version != "" {
		name = fmt.Sprintf("ollama %s", deps.Ollama.Version)
	}
	fmt.Printf("  %-20s installed=%v running=%v (%s)\n",
		name, deps.Ollama.Installed, deps.Ollama.Running, deps.Ollama.Status)

	if deps.AllOK {
		fmt.Println("\nEverything looks good.")
	} else {
		fmt.Println("\nSome dependencies need attention.")
	}

	return nil
}
