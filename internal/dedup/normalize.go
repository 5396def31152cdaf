package dedup

import "strings"

// NormalizeEmail lowercases and trims an address for comparison.
// Returns "" for effectively-empty input so absent fields never match.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone reduces a phone number to a canonical comparable form:
// every character except digits is dropped, a leading "+" survives, and
// the international "00" prefix is folded into "+". Numbers with no
// digits normalize to "".
func NormalizePhone(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" || s == "+" {
		return ""
	}
	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	}
	return s
}

// NormalizeName case-folds and collapses internal whitespace so that
// "Jean  DUPONT" and "jean dupont" compare equal before the fuzzy
// ratio is applied.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
