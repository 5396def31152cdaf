package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/lmercier/ncdedup/internal/carddav"
	"github.com/lmercier/ncdedup/internal/config"
)

var (
	apiDelete bool
	apiBook   string
)

var apiCmd = &cobra.Command{
	Use:   "api [server_url] [username]",
	Short: "Deduplicate a live Nextcloud address book over CardDAV",
	Long: `Connect to a Nextcloud server, list the contacts of one address
book, and report (or, with --delete, remove) duplicate records.

Server URL and username can also come from the NCDEDUP_SERVER_URL and
NCDEDUP_USERNAME environment variables or the config file; positional
arguments win. The password comes from NCDEDUP_PASSWORD or a masked
prompt.

Examples:
  ncdedup api https://cloud.example.org jean          # dry run
  ncdedup api https://cloud.example.org jean --delete # delete after confirmation
  ncdedup api --addressbook work --threshold 90       # env/config connection`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		fileCfg, err := config.Load(flagConfig)
		if err != nil {
			fatal(err)
		}

		argServer, argUser := "", ""
		if len(args) > 0 {
			argServer = args[0]
		}
		if len(args) > 1 {
			argUser = args[1]
		}
		conn := config.ResolveConnection(fileCfg, argServer, argUser, apiBook)
		if conn.ServerURL == "" || conn.Username == "" {
			fatal(fmt.Errorf("server URL and username are required (arguments, NCDEDUP_SERVER_URL/NCDEDUP_USERNAME, or config file)"))
		}

		detect, err := detectConfig(cmd, fileCfg)
		if err != nil {
			fatal(err)
		}

		if conn.Password == "" {
			conn.Password, err = promptPassword(conn.Username)
			if err != nil {
				fatal(fmt.Errorf("read password: %w", err))
			}
		}

		ctx := context.Background()

		fmt.Printf("Connecting to %s as %s...\n", conn.ServerURL, conn.Username)
		client, err := carddav.Connect(ctx, carddavConfig(fileCfg, conn))
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Connected to address book %q\n\n", client.AddressBook())

		records, err := client.ListContacts(ctx)
		if err != nil {
			fatal(err)
		}

		outcome, summary, err := runPipeline(ctx, records, client, detect, apiDelete, os.Stdin, os.Stdout)
		if err != nil {
			fatal(err)
		}
		os.Exit(exitCode(outcome, summary))
	},
}

func init() {
	apiCmd.Flags().BoolVar(&apiDelete, "delete", false, "Delete duplicates (default is dry-run)")
	apiCmd.Flags().Int("threshold", 85, "Name similarity threshold (0-100)")
	apiCmd.Flags().StringVar(&apiBook, "addressbook", "", "Address book name (default: first found)")
	rootCmd.AddCommand(apiCmd)
}

// carddavConfig merges the config file's network section onto the
// transport defaults.
func carddavConfig(fileCfg *config.File, conn config.Connection) carddav.Config {
	cfg := carddav.DefaultConfig()
	cfg.ServerURL = conn.ServerURL
	cfg.Username = conn.Username
	cfg.Password = conn.Password
	cfg.AddressBook = conn.AddressBook

	if fileCfg.Network.TimeoutSecs > 0 {
		cfg.Timeout = time.Duration(fileCfg.Network.TimeoutSecs) * time.Second
	}
	if fileCfg.Network.MaxRetries != nil && *fileCfg.Network.MaxRetries >= 0 {
		cfg.MaxRetries = *fileCfg.Network.MaxRetries
	}
	if fileCfg.Network.RetryDelaySecs > 0 {
		cfg.RetryDelay = time.Duration(fileCfg.Network.RetryDelaySecs) * time.Second
	}
	return cfg
}

// promptPassword reads the password without echoing it.
func promptPassword(username string) (string, error) {
	pw, err := readline.Password(fmt.Sprintf("Password for %s: ", username))
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
