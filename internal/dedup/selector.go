package dedup

import "github.com/lmercier/ncdedup/internal/types"

// SelectKeeper picks the one record to retain from a group. Ranking, in
// order of precedence:
//
//  1. Completeness score (populated notable fields) — higher wins.
//  2. Contact-method count (emails + phones) — higher wins.
//  3. Lexicographically smallest ID — deterministic tie-break.
//
// Pure function; repeated runs on identical input pick the same keeper.
func SelectKeeper(g *types.DuplicateGroup) *types.ContactRecord {
	if len(g.Records) == 0 {
		return nil
	}
	best := g.Records[0]
	for _, r := range g.Records[1:] {
		if better(r, best) {
			best = r
		}
	}
	return best
}

// better reports whether a outranks b under the keeper total order.
func better(a, b *types.ContactRecord) bool {
	ca, cb := a.Completeness(), b.Completeness()
	if ca != cb {
		return ca > cb
	}
	ma, mb := a.MethodCount(), b.MethodCount()
	if ma != mb {
		return ma > mb
	}
	return a.ID < b.ID
}
