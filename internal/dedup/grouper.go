package dedup

import (
	"sort"

	"github.com/lmercier/ncdedup/internal/types"
)

// Group partitions records into disjoint duplicate groups and selects a
// keeper for each. Every input record lands in exactly one set; only
// sets with two or more members are returned. The result is sorted by
// the smallest member ID of each group so output is stable across runs.
func Group(records []*types.ContactRecord, cfg Config) []*types.DuplicateGroup {
	uf := newUnionFind(len(records))

	if cfg.MatchByEmail {
		unionByKey(uf, records, func(r *types.ContactRecord) []string {
			keys := make([]string, 0, len(r.Emails))
			for _, e := range r.Emails {
				if n := NormalizeEmail(e); n != "" {
					keys = append(keys, n)
				}
			}
			return keys
		})
	}
	if cfg.MatchByPhone {
		unionByKey(uf, records, func(r *types.ContactRecord) []string {
			keys := make([]string, 0, len(r.Phones))
			for _, p := range r.Phones {
				if p.Normalized != "" {
					keys = append(keys, p.Normalized)
				}
			}
			return keys
		})
	}
	if cfg.MatchByName {
		unionByFuzzyName(uf, records, cfg.Threshold)
	}

	// Collect the sets.
	members := make(map[int][]*types.ContactRecord)
	for i, r := range records {
		root := uf.find(i)
		members[root] = append(members[root], r)
	}

	groups := make([]*types.DuplicateGroup, 0, len(members))
	for _, recs := range members {
		if len(recs) < 2 {
			continue
		}
		sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
		g := &types.DuplicateGroup{Records: recs}
		g.Keeper = SelectKeeper(g)
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Records[0].ID < groups[j].Records[0].ID
	})
	return groups
}

// unionByKey merges every pair of records sharing an exact key. Each
// key buckets to the first record that produced it, so a bucket of N
// records costs N-1 unions instead of N².
func unionByKey(uf *unionFind, records []*types.ContactRecord, keysOf func(*types.ContactRecord) []string) {
	first := make(map[string]int)
	for i, r := range records {
		for _, key := range keysOf(r) {
			if j, ok := first[key]; ok {
				uf.union(i, j)
			} else {
				first[key] = i
			}
		}
	}
}

// unionByFuzzyName merges records whose display names reach the
// similarity threshold. Fuzzy scores have no bucketable key, so this is
// the one pairwise pass; fine for the few thousand records an address
// book holds.
func unionByFuzzyName(uf *unionFind, records []*types.ContactRecord, threshold int) {
	named := make([]int, 0, len(records))
	for i, r := range records {
		if NormalizeName(r.FullName) != "" {
			named = append(named, i)
		}
	}
	for x := 0; x < len(named); x++ {
		for y := x + 1; y < len(named); y++ {
			i, j := named[x], named[y]
			if uf.find(i) == uf.find(j) {
				continue
			}
			if NameSimilarity(records[i].FullName, records[j].FullName) >= threshold {
				uf.union(i, j)
			}
		}
	}
}
