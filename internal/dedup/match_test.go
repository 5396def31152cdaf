package dedup

import (
	"testing"

	"github.com/lmercier/ncdedup/internal/types"
)

func rec(id, name string, emails []string, phones ...string) *types.ContactRecord {
	r := &types.ContactRecord{ID: id, FullName: name, Emails: emails}
	for _, p := range phones {
		r.Phones = append(r.Phones, types.Phone{Raw: p, Normalized: NormalizePhone(p)})
	}
	return r
}

func TestMatchByEmail(t *testing.T) {
	cfg := DefaultConfig()

	a := rec("a", "Alice", []string{"Alice@Example.com"})
	b := rec("b", "Completely Different", []string{"other@x.com", "alice@example.com"})
	if !Match(a, b, cfg) {
		t.Error("records sharing an email (case-insensitive) must match")
	}

	c := rec("c", "Nobody Similar", []string{"c@x.com"})
	if Match(a, c, cfg) {
		t.Error("records with disjoint emails and dissimilar names must not match")
	}
}

func TestMatchByPhone(t *testing.T) {
	cfg := DefaultConfig()

	a := rec("a", "Someone", nil, "+33 1 23 45 67 89")
	b := rec("b", "Entirely Other", nil, "0033123456789")
	if !Match(a, b, cfg) {
		t.Error("records sharing a normalized phone must match")
	}
}

func TestMatchByName(t *testing.T) {
	cfg := DefaultConfig()

	a := rec("a", "Jean Dupont", nil)
	b := rec("b", "Jean  DUPONT", nil)
	if !Match(a, b, cfg) {
		t.Error("identical names modulo case/whitespace must match at the default threshold")
	}
}

func TestMatchEmptyFieldsNeverMatch(t *testing.T) {
	cfg := DefaultConfig()

	// Two records with no name, no email, no phone: nothing to compare.
	a := rec("a", "", nil)
	b := rec("b", "", nil)
	if Match(a, b, cfg) {
		t.Error("absent fields must never count as equal")
	}

	// Empty-string emails must not bucket together.
	c := rec("c", "", []string{""})
	d := rec("d", "", []string{""})
	if Match(c, d, cfg) {
		t.Error("empty email strings must not match")
	}

	// Phones that normalize to nothing must not match.
	e := rec("e", "", nil, "ext.")
	f := rec("f", "", nil, "-")
	if Match(e, f, cfg) {
		t.Error("phones with no digits must not match")
	}
}

func TestMatchRuleToggles(t *testing.T) {
	a := rec("a", "Jean Dupont", []string{"j@x.com"}, "0123456789")
	b := rec("b", "Jean Dupont", []string{"j@x.com"}, "0123456789")

	cfg := DefaultConfig()
	cfg.MatchByEmail = false
	cfg.MatchByPhone = false
	cfg.MatchByName = true
	if !Match(a, b, cfg) {
		t.Error("name rule alone should still match identical names")
	}

	cfg.MatchByName = false
	cfg.MatchByEmail = true
	if !Match(a, b, cfg) {
		t.Error("email rule alone should still match shared addresses")
	}

	cfg.MatchByEmail = false
	cfg.MatchByPhone = true
	if !Match(a, b, cfg) {
		t.Error("phone rule alone should still match shared numbers")
	}
}

func TestNameSimilarityThresholds(t *testing.T) {
	// Normalized Levenshtein: one edit over ten characters = 90.
	score := NameSimilarity("Jon Smith", "John Smith")
	if score != 90 {
		t.Fatalf("NameSimilarity(Jon Smith, John Smith) = %d, want 90", score)
	}

	a := rec("a", "Jon Smith", nil)
	b := rec("b", "John Smith", nil)

	strict := DefaultConfig()
	strict.Threshold = 95
	if Match(a, b, strict) {
		t.Error("threshold 95: Jon/John Smith must not match")
	}

	loose := DefaultConfig()
	loose.Threshold = 70
	if !Match(a, b, loose) {
		t.Error("threshold 70: Jon/John Smith must match")
	}
}

func TestNameSimilarityEmpty(t *testing.T) {
	if got := NameSimilarity("", "anything"); got != 0 {
		t.Errorf("empty name similarity = %d, want 0", got)
	}
	if got := NameSimilarity("", ""); got != 0 {
		t.Errorf("two empty names similarity = %d, want 0", got)
	}
}

func TestNameSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Jean Dupont", "Jean Dupond"},
		{"Marie Curie", "Maria Curie"},
		{"A", "ABCD"},
	}
	for _, p := range pairs {
		if NameSimilarity(p[0], p[1]) != NameSimilarity(p[1], p[0]) {
			t.Errorf("similarity not symmetric for %q / %q", p[0], p[1])
		}
	}
}
