package dedup

import (
	"math"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/lmercier/ncdedup/internal/types"
)

// Match reports whether two records are duplicates under the configured
// rules. The relation is symmetric; transitivity is imposed later by
// the grouper, not here.
func Match(a, b *types.ContactRecord, cfg Config) bool {
	if cfg.MatchByEmail && shareEmail(a, b) {
		return true
	}
	if cfg.MatchByPhone && sharePhone(a, b) {
		return true
	}
	if cfg.MatchByName && NameSimilarity(a.FullName, b.FullName) >= cfg.Threshold && hasName(a) && hasName(b) {
		return true
	}
	return false
}

// NameSimilarity returns the normalized Levenshtein ratio (0-100) of
// the two names: 100*(1 - distance/longer length). Symmetric and
// deterministic. Empty names score 0 so they can never reach any valid
// threshold.
func NameSimilarity(a, b string) int {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return 0
	}
	return int(math.Round(strutil.Similarity(na, nb, metrics.NewLevenshtein()) * 100))
}

func hasName(r *types.ContactRecord) bool {
	return NormalizeName(r.FullName) != ""
}

func shareEmail(a, b *types.ContactRecord) bool {
	if len(a.Emails) == 0 || len(b.Emails) == 0 {
		return false
	}
	seen := make(map[string]bool, len(a.Emails))
	for _, e := range a.Emails {
		if n := NormalizeEmail(e); n != "" {
			seen[n] = true
		}
	}
	for _, e := range b.Emails {
		if n := NormalizeEmail(e); n != "" && seen[n] {
			return true
		}
	}
	return false
}

func sharePhone(a, b *types.ContactRecord) bool {
	if len(a.Phones) == 0 || len(b.Phones) == 0 {
		return false
	}
	seen := make(map[string]bool, len(a.Phones))
	for _, p := range a.Phones {
		if p.Normalized != "" {
			seen[p.Normalized] = true
		}
	}
	for _, p := range b.Phones {
		if p.Normalized != "" && seen[p.Normalized] {
			return true
		}
	}
	return false
}
