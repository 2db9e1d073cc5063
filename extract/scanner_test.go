package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanSimpleMarker(t *testing.T) {
	s := NewScanner()

	occs := s.Scan(`<button>{t("Save")}</button>`, "Button.svelte")
	require.Len(t, occs, 1)
	require.Equal(t, "Save", occs[0].Content)
	require.Equal(t, Simple, occs[0].Kind)
	require.Equal(t, "Button.svelte", occs[0].File)
	require.Equal(t, 1, occs[0].Line)
}

func TestScanPluralMarker(t *testing.T) {
	s := NewScanner()

	occs := s.Scan(`t('%{n} item', '%{n} items', n)`, "Count.svelte")
	require.Len(t, occs, 1)
	require.Equal(t, "%{n} item", occs[0].Content)
	require.Equal(t, PluralPair, occs[0].Kind)
	require.Equal(t, "%{n} items", occs[0].PluralContent)
	require.Equal(t, 1, occs[0].Line)
}

func TestScanWithBindingsObject(t *testing.T) {
	s := NewScanner()

	occs := s.Scan(`<p>{t("Hello %{name}", { name: user.name })}</p>`, "f.svelte")
	require.Len(t, occs, 1)
	require.Equal(t, "Hello %{name}", occs[0].Content)
	require.Equal(t, Simple, occs[0].Kind)
}

func TestScanEscapedQuotes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"escaped double quote", `t("say \"hi\"")`, `say "hi"`},
		{"escaped single quote", `t('it\'s fine')`, `it's fine`},
		{"escaped backslash", `t("a\\b")`, `a\b`},
		{"double quote inside single quotes", `t('a "quoted" word')`, `a "quoted" word`},
		{"escaped non-quote", `t("tab\there")`, "tabthere"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner()

			occs := s.Scan(tt.line, "f.svelte")
			require.Len(t, occs, 1)
			require.Equal(t, tt.want, occs[0].Content)
		})
	}
}

func TestScanCommentExclusion(t *testing.T) {
	src := `<script>let x = 1;</script>
<!-- {t("hidden")} -->
<p>{t("visible")}</p>
`

	s := NewScanner()

	occs := s.Scan(src, "f.svelte")
	require.Len(t, occs, 1)
	require.Equal(t, "visible", occs[0].Content)
	require.Equal(t, 3, occs[0].Line)
}

func TestScanMultiLineCommentKeepsLineNumbers(t *testing.T) {
	src := `<!--
t("in a comment")
still commented
-->
<p>{t("after")}</p>`

	s := NewScanner()

	occs := s.Scan(src, "f.svelte")
	require.Len(t, occs, 1)
	require.Equal(t, "after", occs[0].Content)
	require.Equal(t, 5, occs[0].Line)
}

func TestScanUnterminatedComment(t *testing.T) {
	src := `<p>{t("before")}</p>
<!-- t("never closed")
t("also gone")`

	s := NewScanner()

	occs := s.Scan(src, "f.svelte")
	require.Len(t, occs, 1)
	require.Equal(t, "before", occs[0].Content)
}

func TestScanLineNumberStability(t *testing.T) {
	call := `<p>{t("anchor")}</p>`

	for _, pad := range []int{0, 1, 5, 40} {
		src := strings.Repeat("\n", pad) + `<!-- t("noise") -->` + "\n" + call

		s := NewScanner()

		occs := s.Scan(src, "f.svelte")
		require.Len(t, occs, 1)
		require.Equal(t, pad+2, occs[0].Line)
	}
}

func TestScanMultipleMatchesPerLine(t *testing.T) {
	line := `{t("first")} and {t('one thing', 'many things', n)} and {t("last")}`

	s := NewScanner()

	occs := s.Scan(line, "f.svelte")
	require.Len(t, occs, 3)

	require.Equal(t, "first", occs[0].Content)
	require.Equal(t, Simple, occs[0].Kind)

	require.Equal(t, "one thing", occs[1].Content)
	require.Equal(t, PluralPair, occs[1].Kind)
	require.Equal(t, "many things", occs[1].PluralContent)

	require.Equal(t, "last", occs[2].Content)

	for _, o := range occs {
		require.Equal(t, 1, o.Line)
	}
}

func TestScanMalformedCallsAreSkipped(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unbalanced quote", `t("oops)`},
		{"no arguments", `t()`},
		{"non-literal argument", `t(someVar)`},
		{"different identifier", `want("no")`},
		{"underscore prefix", `_t("no")`},
		{"multi-line call start", `t("broken`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner()

			require.Empty(t, s.Scan(tt.line, "f.svelte"))
		})
	}
}

func TestScanTokenBoundary(t *testing.T) {
	s := NewScanner()

	// A preceding dot or brace is a valid boundary; a word character is not.
	occs := s.Scan(`{i18n.t("dotted")}`, "f.svelte")
	require.Len(t, occs, 1)
	require.Equal(t, "dotted", occs[0].Content)

	require.Empty(t, s.Scan(`result("nope")`, "f.svelte"))
}

func TestScanCustomToken(t *testing.T) {
	s := &Scanner{
		Token:        "gettext",
		CommentStart: DefaultCommentStart,
		CommentEnd:   DefaultCommentEnd,
	}

	occs := s.Scan(`{gettext("Hello")} {t("ignored")}`, "f.svelte")
	require.Len(t, occs, 1)
	require.Equal(t, "Hello", occs[0].Content)
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `plain`},
		{`a\"b`, `a"b`},
		{`a\\b`, `a\b`},
		{`a\nb`, `anb`}, // generic pass, not an escape table
		{`trailing\`, `trailing\`},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Unescape(tt.in))
	}
}

func TestStripCommentsPreservesNewlines(t *testing.T) {
	src := "a<!--x\ny\nz-->b\nc"
	require.Equal(t, "a\n\nb\nc", stripComments(src, "<!--", "-->"))

	// No comments at all returns the input unchanged.
	require.Equal(t, "abc", stripComments("abc", "<!--", "-->"))
}
