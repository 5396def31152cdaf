package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lmercier/ncdedup/internal/carddav"
	"github.com/lmercier/ncdedup/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check [server_url] [username]",
	Short: "Verify the server connection and list address books",
	Long: `Connect to the Nextcloud server, authenticate, and list every
address book with its contact count. Use this to verify credentials and
CardDAV access before a real run.

Exit codes:
  0 - Connection and authentication succeeded
  2 - Cannot connect or authenticate`,
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
		conn := config.ResolveConnection(fileCfg, argServer, argUser, "")
		if conn.ServerURL == "" || conn.Username == "" {
			fatal(fmt.Errorf("server URL and username are required (arguments, NCDEDUP_SERVER_URL/NCDEDUP_USERNAME, or config file)"))
		}
		if conn.Password == "" {
			conn.Password, err = promptPassword(conn.Username)
			if err != nil {
				fatal(fmt.Errorf("read password: %w", err))
			}
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		ctx := context.Background()

		fmt.Printf("%s Connecting to %s as %s\n", cyan("→"), conn.ServerURL, conn.Username)
		client, err := carddav.Connect(ctx, carddavConfig(fileCfg, conn))
		if err != nil {
			fmt.Printf("  %s %v\n", red("✗"), err)
			os.Exit(exitCritical)
		}
		fmt.Printf("  %s Authenticated\n\n", green("✓"))

		books := client.Books()
		fmt.Printf("%s Found %d address book(s):\n", cyan("→"), len(books))
		for _, book := range books {
			count, err := client.CountContacts(ctx, book.Path)
			if err != nil {
				fmt.Printf("  %s %s: %v\n", red("✗"), book.Name, err)
				continue
			}
			fmt.Printf("  %s %s (%d contact(s))\n", green("✓"), book.Name, count)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
