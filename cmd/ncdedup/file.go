package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lmercier/ncdedup/internal/config"
	"github.com/lmercier/ncdedup/internal/plan"
	"github.com/lmercier/ncdedup/internal/vcard"
)

var fileDelete bool

var fileCmd = &cobra.Command{
	Use:   "file <input.vcf> <output.vcf>",
	Short: "Deduplicate an exported vCard file",
	Long: `Read an exported contact file, report duplicate records, and with
--delete write a filtered copy containing only the kept records to the
output path. The input file is never modified.

A dry run (the default) only prints the report; the output file is
written in --delete mode, after confirmation.

Examples:
  ncdedup file contacts.vcf cleaned.vcf           # dry run
  ncdedup file contacts.vcf cleaned.vcf --delete  # write cleaned.vcf`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		fileCfg, err := config.Load(flagConfig)
		if err != nil {
			fatal(err)
		}
		detect, err := detectConfig(cmd, fileCfg)
		if err != nil {
			fatal(err)
		}

		inputPath, outputPath := args[0], args[1]

		store, err := vcard.Open(inputPath, outputPath)
		if err != nil {
			fatal(err)
		}

		ctx := context.Background()
		outcome, summary, err := runPipeline(ctx, store.ListContacts(), store, detect, fileDelete, os.Stdin, os.Stdout)
		if err != nil {
			fatal(err)
		}

		if outcome == plan.OutcomeExecuted {
			if err := store.Flush(); err != nil {
				fatal(fmt.Errorf("write %s: %w", outputPath, err))
			}
			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s Wrote %d contact(s) to %s\n", green("✓"), store.Survivors(), outputPath)
		}
		os.Exit(exitCode(outcome, summary))
	},
}

func init() {
	fileCmd.Flags().BoolVar(&fileDelete, "delete", false, "Write the filtered output file (default is dry-run)")
	fileCmd.Flags().Int("threshold", 85, "Name similarity threshold (0-100)")
	rootCmd.AddCommand(fileCmd)
}
