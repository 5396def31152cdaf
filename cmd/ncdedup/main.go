package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes, per the CLI contract: 0 success, 1 user cancellation or
// recoverable error, 2 critical error (cannot connect, malformed input).
const (
	exitOK        = 0
	exitCancelled = 1
	exitCritical  = 2
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ncdedup",
	Short: "Remove duplicate contacts from a Nextcloud address book",
	Long: `ncdedup finds and removes duplicate contacts, either live over
CardDAV or from an exported vCard file.

Two contacts are duplicates when they share an email address (case
insensitive), share a phone number (after normalization), or have
sufficiently similar names (fuzzy ratio, threshold 0-100). Matching is
transitive: chains of matches collapse into a single group, and within
each group the most complete record is kept.

By default every run is a dry run. Pass --delete to actually remove
records; a single confirmation gates the whole batch.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default ~/.config/ncdedup/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCritical)
	}
}
