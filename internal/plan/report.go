package plan

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lmercier/ncdedup/internal/types"
)

// Reporter renders the plan and the execution summary.
type Reporter struct {
	Out io.Writer
}

// Render prints every planned group: the kept record with its contact
// methods, then each record to be deleted.
func (r *Reporter) Render(p *Plan) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	for i, g := range p.Groups {
		fmt.Fprintf(r.Out, "%s\n", cyan(fmt.Sprintf("Group %d (%d records):", i+1, len(g.Records))))
		for _, rec := range g.Records {
			label := red("DELETE")
			if rec.ID == g.Keeper.ID {
				label = green("KEEP  ")
			}
			fmt.Fprintf(r.Out, "  [%s] %s%s\n", label, rec.DisplayName(), methodSuffix(rec))
		}
		fmt.Fprintln(r.Out)
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(r.Out, "%s %d duplicate group(s), %d record(s), %d deletion(s) planned\n",
		yellow("⚠"), len(p.Groups), p.DuplicateCount(), len(p.Deletions()))
}

// RenderSummary prints the post-deletion tally, listing every failed
// record with its error.
func (r *Reporter) RenderSummary(s *Summary) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	if len(s.Failures) > 0 {
		fmt.Fprintf(r.Out, "\n%s %d deletion(s) failed:\n", red("✗"), len(s.Failures))
		for _, f := range s.Failures {
			fmt.Fprintf(r.Out, "  %s: %v\n", f.RecordID, f.Err)
		}
	}
	fmt.Fprintf(r.Out, "\n%s Deleted %d of %d record(s)\n", green("✓"), s.Deleted, s.Deleted+len(s.Failures))
}

func methodSuffix(rec *types.ContactRecord) string {
	var parts []string
	parts = append(parts, rec.Emails...)
	for _, p := range rec.Phones {
		parts = append(parts, p.Raw)
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", strings.Join(parts, ", "))
}
