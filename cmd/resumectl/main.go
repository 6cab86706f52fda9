// Package main provides resumectl, the maintenance CLI for the resume backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumectl",
	Short: "Resume backend maintenance tool",
	Long:  "resumectl manages the resume database schema and ingests local resume files through the same pipeline as the upload API.",
	// Errors are printed once by main
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
