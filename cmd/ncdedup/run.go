package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lmercier/ncdedup/internal/config"
	"github.com/lmercier/ncdedup/internal/dedup"
	"github.com/lmercier/ncdedup/internal/plan"
	"github.com/lmercier/ncdedup/internal/types"
)

// detectConfig resolves the detection settings with CLI-flag > env >
// config-file > default precedence.
func detectConfig(cmd *cobra.Command, fileCfg *config.File) (dedup.Config, error) {
	cfg, err := dedup.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	if fileCfg.Threshold != nil && os.Getenv("NCDEDUP_THRESHOLD") == "" {
		cfg.Threshold = *fileCfg.Threshold
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold, _ = cmd.Flags().GetInt("threshold")
	}
	return cfg, cfg.Validate()
}

// runPipeline is the shared Loader → Grouper → Selector → Planner flow.
// It renders the report, gates deletion behind one confirmation, and
// returns the outcome plus the execution summary (nil unless executed).
func runPipeline(ctx context.Context, records []*types.ContactRecord, deleter plan.Deleter,
	detect dedup.Config, doDelete bool, in io.Reader, out io.Writer) (plan.Outcome, *plan.Summary, error) {

	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(out, "Loaded %d contact(s)\n", len(records))
	if flagVerbose {
		fmt.Fprintf(out, "Matching: email=%t phone=%t name=%t (threshold %d)\n",
			detect.MatchByEmail, detect.MatchByPhone, detect.MatchByName, detect.Threshold)
	}

	groups := dedup.Group(records, detect)
	p := plan.Build(groups)
	if p.Empty() {
		fmt.Fprintf(out, "%s No duplicates found\n", green("✓"))
		return plan.OutcomeNoDuplicates, nil, nil
	}

	fmt.Fprintln(out)
	reporter := &plan.Reporter{Out: out}
	reporter.Render(p)

	if !doDelete {
		fmt.Fprintf(out, "\n%s\n", yellow("DRY RUN MODE - No records were deleted"))
		fmt.Fprintf(out, "Run with --delete to remove them\n")
		return plan.OutcomeDryRun, nil, nil
	}

	fmt.Fprintln(out)
	ok, err := plan.Confirm(in, out, len(p.Deletions()))
	if err != nil {
		return plan.OutcomeCancelled, nil, fmt.Errorf("read confirmation: %w", err)
	}
	if !ok {
		fmt.Fprintf(out, "%s Aborted; nothing was deleted\n", yellow("⚠"))
		return plan.OutcomeCancelled, nil, nil
	}

	fmt.Fprintln(out)
	summary, err := plan.Execute(ctx, p, deleter, out)
	if err != nil {
		return plan.OutcomeExecuted, summary, err
	}
	reporter.RenderSummary(summary)
	return plan.OutcomeExecuted, summary, nil
}

// exitCode maps an outcome to the process exit code. An executed run
// with per-record failures is a recoverable error, not a success.
func exitCode(outcome plan.Outcome, summary *plan.Summary) int {
	switch outcome {
	case plan.OutcomeCancelled:
		return exitCancelled
	case plan.OutcomeExecuted:
		if summary != nil && !summary.Ok() {
			return exitCancelled
		}
		return exitOK
	default:
		return exitOK
	}
}

// fatal prints a human-readable cause and exits with the critical code.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(exitCritical)
}
