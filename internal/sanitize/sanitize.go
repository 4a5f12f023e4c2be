// Package sanitize produces file names that are safe for cross-platform
// file synchronization. Unsafe characters are replaced rather than deleted so
// word boundaries stay readable.
package sanitize

import "strings"

// typographic maps common "smart" punctuation onto its ASCII equivalent so it
// degrades gracefully instead of being replaced away. Applied before the
// allow-list pass.
var typographic = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"’", "'", // right single quotation mark
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
)

// AllowList is the set of characters a sanitized name may contain: a fixed
// base set (Latin letters, digits, hyphen, period, underscore, space) plus
// caller-supplied additional characters. Membership is tested per code point;
// the list is never compiled into a pattern, so characters like caret or
// backslash need no escaping.
type AllowList struct {
	additional map[rune]struct{}
}

// NewAllowList builds an AllowList from a string of additional permitted
// characters. Square brackets are stripped from the input; every other code
// point is taken literally.
func NewAllowList(additional string) AllowList {
	set := make(map[rune]struct{}, len(additional))
	for _, r := range additional {
		if r == '[' || r == ']' {
			continue
		}
		set[r] = struct{}{}
	}
	return AllowList{additional: set}
}

// Contains reports whether r is permitted by the allow-list.
func (a AllowList) Contains(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '.' || r == '_' || r == ' ':
		return true
	}
	_, ok := a.additional[r]
	return ok
}

// Name sanitizes a raw file name. Typographic dash and quote variants are
// normalized to ASCII first, then every character outside the allow-list is
// replaced with a single hyphen, and leading/trailing whitespace is trimmed.
// The function is pure and total: any input string yields a result, equal
// inputs yield equal results, and sanitizing twice changes nothing.
func Name(raw string, allow AllowList) string {
	normalized := typographic.Replace(raw)

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if allow.Contains(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}

	return strings.TrimSpace(b.String())
}

// IsSafe reports whether name would survive sanitization unchanged.
func IsSafe(name string, allow AllowList) bool {
	return Name(name, allow) == name
}
