package types

import "fmt"

// DuplicateGroup is a set of records believed to represent the same
// person. After selection runs, exactly one member is the keeper and
// every other member is marked for deletion. Groups are disjoint: a
// record belongs to at most one group.
type DuplicateGroup struct {
	// Records holds the members sorted by ID for stable output.
	Records []*ContactRecord `json:"records"`

	// Keeper is the record to retain. Nil until selection runs.
	Keeper *ContactRecord `json:"keeper,omitempty"`
}

// Deletions returns the non-keeper members, in Records order.
func (g *DuplicateGroup) Deletions() []*ContactRecord {
	if g.Keeper == nil {
		return nil
	}
	out := make([]*ContactRecord, 0, len(g.Records)-1)
	for _, r := range g.Records {
		if r.ID != g.Keeper.ID {
			out = append(out, r)
		}
	}
	return out
}

// Validate checks the group invariants: non-empty, and if a keeper is
// set it must be a member.
func (g *DuplicateGroup) Validate() error {
	if len(g.Records) == 0 {
		return fmt.Errorf("duplicate group has no records")
	}
	if g.Keeper == nil {
		return nil
	}
	for _, r := range g.Records {
		if r.ID == g.Keeper.ID {
			return nil
		}
	}
	return fmt.Errorf("keeper %s is not a member of its group", g.Keeper.ID)
}
