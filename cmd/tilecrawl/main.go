// Package main is the entry point for tilecrawl.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chosenoffset.com/tilecrawl/internal/config"
	"chosenoffset.com/tilecrawl/pkg/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "tilecrawl",
	Version: version,
	Short:   "Real-time tile crawler",
	Long:    `tilecrawl is a small tile-world crawler: explore levels, open doors and chests, and save progress at altars.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; variables may be set directly.
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		logger.Init()
		return nil
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(checkCmd)
}
