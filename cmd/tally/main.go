// Package main implements the tally CLI tool.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Tally - a two-phase task tracker",
	Long: `Tally tracks short text tasks through two phases: checking a task off
keeps it on the list, and a separate archive step moves checked-off
tasks into the history.`,
	SilenceUsage: true,
}
