package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/avolkov/veritas/internal/cli"
)

func main() {
	// Load .env if present (API keys during local development)
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
