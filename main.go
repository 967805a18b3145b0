package main

import (
	"os"

	"github.com/sahibbilal/ollaama-gpt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
