// Package main provides the entry point for the resume screener CLI and HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Heuristic resume screening",
	Long: `Screener scores a batch of resumes against a job description using keyword
and pattern heuristics, ranks them, and exports the results.

Use "screen" for a one-shot batch from files and "serve" for the local HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
