package plan

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/lmercier/ncdedup/internal/types"
)

// Summary tallies an executed plan.
type Summary struct {
	Deleted  int
	Failures []*types.DeletionError
}

// Ok reports whether every planned deletion succeeded.
func (s *Summary) Ok() bool { return len(s.Failures) == 0 }

// Execute deletes every non-keeper record, sequentially and in plan
// order. A failed deletion is recorded and the batch continues;
// deletions are independent per-record operations, so there is no
// partial state to unwind. Context cancellation stops the batch early
// with the remaining records untouched.
func Execute(ctx context.Context, p *Plan, deleter Deleter, out io.Writer) (*Summary, error) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	s := &Summary{}
	for _, rec := range p.Deletions() {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		if err := deleter.DeleteContact(ctx, rec); err != nil {
			s.Failures = append(s.Failures, &types.DeletionError{RecordID: rec.ID, Err: err})
			fmt.Fprintf(out, "%s Failed to delete %s: %v\n", red("✗"), rec.DisplayName(), err)
			continue
		}
		s.Deleted++
		fmt.Fprintf(out, "%s Deleted %s\n", green("✓"), rec.DisplayName())
	}
	return s, nil
}
