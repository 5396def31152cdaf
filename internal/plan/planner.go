// Package plan turns duplicate groups into a deletion plan, renders the
// dry-run report, gates execution behind a single confirmation, and
// carries out deletions one record at a time.
package plan

import (
	"context"

	"github.com/lmercier/ncdedup/internal/types"
)

// Outcome is the exit signal of a run.
type Outcome int

const (
	// OutcomeNoDuplicates means no duplicate groups were found.
	OutcomeNoDuplicates Outcome = iota
	// OutcomeDryRun means groups were found and deletion was suppressed.
	OutcomeDryRun
	// OutcomeExecuted means groups were found and deletion ran.
	OutcomeExecuted
	// OutcomeCancelled means the user declined the confirmation gate.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoDuplicates:
		return "no duplicates"
	case OutcomeDryRun:
		return "dry-run"
	case OutcomeExecuted:
		return "executed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Deleter is the single capability the planner needs from a contact
// source to carry out deletions. Live mode deletes on the server; file
// mode drops the record from the output file.
type Deleter interface {
	DeleteContact(ctx context.Context, rec *types.ContactRecord) error
}

// Plan is the computed deletion set for one run: every group of size
// two or more with its keeper already selected.
type Plan struct {
	Groups []*types.DuplicateGroup
}

// Build assembles a plan from resolved groups. Groups without a keeper
// or with fewer than two members are skipped; the grouper never
// produces either, but the planner doesn't rely on that.
func Build(groups []*types.DuplicateGroup) *Plan {
	p := &Plan{}
	for _, g := range groups {
		if len(g.Records) < 2 || g.Keeper == nil {
			continue
		}
		p.Groups = append(p.Groups, g)
	}
	return p
}

// Empty reports whether there is nothing to delete.
func (p *Plan) Empty() bool { return len(p.Groups) == 0 }

// Deletions returns every non-keeper record across all groups, in
// group order.
func (p *Plan) Deletions() []*types.ContactRecord {
	var out []*types.ContactRecord
	for _, g := range p.Groups {
		out = append(out, g.Deletions()...)
	}
	return out
}

// DuplicateCount is the total number of records inside duplicate groups.
func (p *Plan) DuplicateCount() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.Records)
	}
	return n
}
