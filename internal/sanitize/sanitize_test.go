package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		additional string
		want       string
	}{
		{
			name: "already valid filename",
			raw:  "This is a valid filename.md",
			want: "This is a valid filename.md",
		},
		{
			name: "question mark replaced with hyphen",
			raw:  "This is not valid?.md",
			want: "This is not valid-.md",
		},
		{
			name: "leading whitespace trimmed",
			raw:  " There is whitespace.md",
			want: "There is whitespace.md",
		},
		{
			name: "trailing whitespace trimmed",
			raw:  "There is whitespace.md ",
			want: "There is whitespace.md",
		},
		{
			name:       "additional characters are literal, not paired",
			raw:        "Fancy (exotic) Ž?.md",
			additional: "(Ž",
			want:       "Fancy (exotic- Ž-.md",
		},
		{
			name: "en dash normalized to hyphen",
			raw:  "2024–2025 report.md",
			want: "2024-2025 report.md",
		},
		{
			name: "em dash normalized to hyphen",
			raw:  "notes — draft.md",
			want: "notes - draft.md",
		},
		{
			name:       "curly apostrophe normalized",
			raw:        "Tom’s notes.md",
			additional: "'",
			want:       "Tom's notes.md",
		},
		{
			name: "curly apostrophe without apostrophe in allow-list",
			raw:  "Tom’s notes.md",
			want: "Tom-s notes.md",
		},
		{
			name:       "curly double quotes normalized",
			raw:        "“quoted”.md",
			additional: `"`,
			want:       `"quoted".md`,
		},
		{
			name: "each disallowed character becomes one hyphen",
			raw:  "a??b.md",
			want: "a--b.md",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "slash and colon replaced",
			raw:  "a/b:c.md",
			want: "a-b-c.md",
		},
		{
			name:       "square brackets stripped from additional set",
			raw:        "index[0].md",
			additional: "[]",
			want:       "index-0-.md",
		},
		{
			name:       "caret in additional set is literal",
			raw:        "x^2.md",
			additional: "^",
			want:       "x^2.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allow := NewAllowList(tt.additional)
			assert.Equal(t, tt.want, Name(tt.raw, allow))
		})
	}
}

func TestName_Idempotent(t *testing.T) {
	inputs := []string{
		"This is not valid?.md",
		" padded — name*.md ",
		"“smart” ‘quotes’.md",
		"ünïcödé.md",
		"",
	}
	allowLists := []AllowList{
		NewAllowList(""),
		NewAllowList("äöü"),
		NewAllowList(`"'`),
	}

	for _, in := range inputs {
		for _, allow := range allowLists {
			once := Name(in, allow)
			assert.Equal(t, once, Name(once, allow), "sanitizing twice must be a no-op for %q", in)
		}
	}
}

func TestName_OutputOnlyContainsAllowed(t *testing.T) {
	allow := NewAllowList("é")
	out := Name("wild: <chars> | everywhere é?.md", allow)

	for _, r := range out {
		assert.True(t, allow.Contains(r), "output rune %q not in allow-list", r)
	}
	assert.Equal(t, out, Name(out, allow))
}

func TestIsSafe(t *testing.T) {
	allow := NewAllowList("")

	assert.True(t, IsSafe("ok.md", allow))
	assert.False(t, IsSafe("bad?.md", allow))
	assert.False(t, IsSafe(" padded.md", allow))
}
