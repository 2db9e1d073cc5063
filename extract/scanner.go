package extract

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Default marker token and comment delimiters for Svelte components.
const (
	DefaultToken        = "t"
	DefaultCommentStart = "<!--"
	DefaultCommentEnd   = "-->"
)

// Scanner finds marker calls in template source. It is a line-oriented
// pattern matcher, not a parser: a call must be fully contained on one
// physical line, and anything that does not satisfy the full call shape is
// skipped without error.
type Scanner struct {
	Token        string // marker function name, e.g. "t"
	CommentStart string
	CommentEnd   string

	once   sync.Once
	simple *regexp.Regexp
	plural *regexp.Regexp
}

// NewScanner returns a Scanner for the default t("...") markers inside
// <!-- --> comments.
func NewScanner() *Scanner {
	return &Scanner{
		Token:        DefaultToken,
		CommentStart: DefaultCommentStart,
		CommentEnd:   DefaultCommentEnd,
	}
}

// quoted matches a single- or double-quoted string, allowing backslash
// escapes so an escaped quote does not terminate the match.
const quoted = `('(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*")`

// compile builds the match patterns once. Scan may afterwards be called
// concurrently for independent files.
func (s *Scanner) compile() {
	if s.Token == "" {
		s.Token = DefaultToken
	}

	tok := regexp.QuoteMeta(s.Token)
	if r, _ := utf8.DecodeRuneInString(s.Token); unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		tok = `\b` + tok
	}

	// t("...") or t("...", {...}); the bindings object is only matched for
	// balance, its contents are ignored.
	s.simple = regexp.MustCompile(tok + `\(\s*` + quoted + `\s*(?:,\s*\{[^{}]*\}\s*)?\)`)

	// t("...", "...", n); the count argument and anything after it is not
	// captured.
	s.plural = regexp.MustCompile(tok + `\(\s*` + quoted + `\s*,\s*` + quoted + `\s*,`)
}

// Scan returns every marker call in src, in line order and left-to-right
// within a line. Line numbers are 1-based and computed against the original
// text: comment stripping keeps newlines, so removal never shifts the
// numbering of surviving lines.
func (s *Scanner) Scan(src, fileID string) []Occurrence {
	s.once.Do(s.compile)

	stripped := stripComments(src, s.CommentStart, s.CommentEnd)

	var occs []Occurrence

	for i, line := range strings.Split(stripped, "\n") {
		occs = appendLineMatches(occs, s, line, fileID, i+1)
	}

	return occs
}

type lineMatch struct {
	start, end int
	occ        Occurrence
}

func appendLineMatches(occs []Occurrence, s *Scanner, line, fileID string, lineNo int) []Occurrence {
	var ms []lineMatch

	for _, idx := range s.plural.FindAllStringSubmatchIndex(line, -1) {
		ms = append(ms, lineMatch{
			start: idx[0],
			end:   idx[1],
			occ: Occurrence{
				Content:       unquote(line[idx[2]:idx[3]]),
				Kind:          PluralPair,
				PluralContent: unquote(line[idx[4]:idx[5]]),
				File:          fileID,
				Line:          lineNo,
			},
		})
	}

	for _, idx := range s.simple.FindAllStringSubmatchIndex(line, -1) {
		m := lineMatch{
			start: idx[0],
			end:   idx[1],
			occ: Occurrence{
				Content: unquote(line[idx[2]:idx[3]]),
				Kind:    Simple,
				File:    fileID,
				Line:    lineNo,
			},
		}
		if !overlaps(ms, m) {
			ms = append(ms, m)
		}
	}

	// Left-to-right within the line.
	sort.Slice(ms, func(i, j int) bool { return ms[i].start < ms[j].start })

	for _, m := range ms {
		occs = append(occs, m.occ)
	}

	return occs
}

func overlaps(ms []lineMatch, m lineMatch) bool {
	for _, o := range ms {
		if m.start < o.end && o.start < m.end {
			return true
		}
	}

	return false
}

// unquote strips the surrounding quotes from a captured string and applies
// the generic unescape.
func unquote(s string) string {
	return Unescape(s[1 : len(s)-1])
}

// Unescape replaces every backslash-escaped character with the literal
// character. This is a single generic pass: \x becomes x for all x, not
// just quotes. A trailing lone backslash is kept as-is.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}

		b.WriteByte(s[i])
	}

	return b.String()
}

// stripComments removes every region between start and end markers,
// replacing it with the newlines it contained so that line numbers computed
// on the result match the original text. Comments do not nest: the first
// end marker closes the region. An unterminated comment runs to the end of
// the input.
func stripComments(src, start, end string) string {
	if start == "" || end == "" {
		return src
	}

	i := strings.Index(src, start)
	if i < 0 {
		return src
	}

	var b strings.Builder

	b.Grow(len(src))

	for i >= 0 {
		b.WriteString(src[:i])

		rest := src[i+len(start):]

		j := strings.Index(rest, end)
		if j < 0 {
			writeNewlines(&b, rest)

			return b.String()
		}

		writeNewlines(&b, rest[:j])

		src = rest[j+len(end):]
		i = strings.Index(src, start)
	}

	b.WriteString(src)

	return b.String()
}

func writeNewlines(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			b.WriteByte('\n')
		}
	}
}
