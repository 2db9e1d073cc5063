package pofile

import (
	"fmt"
	"strings"

	"codeberg.org/svext/svext/extract"
)

const (
	refPrefix     = "#:"
	msgidKeyword  = "msgid "
	pluralKeyword = "msgid_plural "
)

// Rewriter repairs the #: reference comments of a generated catalog file so
// they point at the real component locations instead of the generated
// intermediate source file.
//
// Only reference lines whose every path token equals GeneratedPath are
// touched; references to anything else pass through byte-identical, as does
// every non-reference line. Running the rewriter over its own output is a
// no-op, since repaired lines no longer mention the generated path.
type Rewriter struct {
	// GeneratedPath is the path (as it appears in #: tokens, line numbers
	// ignored) of the generated intermediate file.
	GeneratedPath string
}

// Rewrite returns the rewritten catalog text and the number of reference
// lines replaced. refs maps each unit key to its real locations; entries
// whose key is absent keep their reference lines unchanged.
func (r *Rewriter) Rewrite(text string, refs map[extract.Key][]extract.Location) (string, int) {
	lines := strings.Split(text, "\n")

	out := make([]string, len(lines))
	copy(out, lines)

	replaced := 0

	var pending []int // indices of reference lines since the last entry boundary

	for i, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
			// Entry boundary.
			pending = pending[:0]

		case strings.HasPrefix(line, refPrefix):
			pending = append(pending, i)

		case strings.HasPrefix(line, msgidKeyword):
			key, ok := entryKey(lines, i)
			if !ok {
				pending = pending[:0]

				continue
			}

			locs, known := refs[key]

			if known {
				for _, p := range pending {
					if !r.referencesGenerated(lines[p]) {
						continue
					}

					out[p] = formatRefLine(locs)
					replaced++
				}
			}

			pending = pending[:0]
		}
	}

	return strings.Join(out, "\n"), replaced
}

// entryKey determines the identity key of the entry whose msgid declaration
// starts at lines[i]. The lookahead only ever inspects quoted continuation
// lines and one msgid_plural declaration; it stops at a blank line or
// another msgid, treating the entry as simple.
func entryKey(lines []string, i int) (extract.Key, bool) {
	content, j, ok := declValue(lines, i, msgidKeyword)
	if !ok {
		return extract.Key{}, false
	}

	if j < len(lines) && strings.HasPrefix(lines[j], pluralKeyword) {
		plural, _, ok := declValue(lines, j, pluralKeyword)
		if !ok {
			return extract.Key{}, false
		}

		return extract.Key{Kind: extract.PluralPair, Content: content, PluralContent: plural}, true
	}

	return extract.Key{Kind: extract.Simple, Content: content}, true
}

// declValue parses the quoted value of the declaration at lines[i],
// concatenating continuation lines. It returns the unescaped value and the
// index of the first line past the declaration.
func declValue(lines []string, i int, keyword string) (string, int, bool) {
	v, ok := unquote(strings.TrimPrefix(lines[i], keyword))
	if !ok {
		return "", 0, false
	}

	j := i + 1
	for j < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[j]), `"`) {
		cont, ok := unquote(lines[j])
		if !ok {
			break
		}

		v += cont
		j++
	}

	return v, j, true
}

// referencesGenerated reports whether every path:line token on a reference
// line points at the generated intermediate file.
func (r *Rewriter) referencesGenerated(line string) bool {
	tokens := strings.Fields(strings.TrimPrefix(line, refPrefix))
	if len(tokens) == 0 {
		return false
	}

	for _, tok := range tokens {
		path := tok
		if c := strings.LastIndexByte(tok, ':'); c >= 0 {
			path = tok[:c]
		}

		if path != r.GeneratedPath {
			return false
		}
	}

	return true
}

func formatRefLine(locs []extract.Location) string {
	var b strings.Builder

	b.WriteString(refPrefix)

	for _, loc := range locs {
		fmt.Fprintf(&b, " %s:%d", loc.File, loc.Line)
	}

	return b.String()
}

// unquote parses one quoted PO line fragment, undoing the catalog's escape
// conventions: \n, \t, \" and \\ become the literal character; any other
// escaped character is kept literally.
func unquote(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}

	inner := s[1 : len(s)-1]
	if !strings.Contains(inner, `\`) {
		return inner, true
	}

	var b strings.Builder

	b.Grow(len(inner))

	for i := 0; i < len(inner); i++ {
		if inner[i] != '\\' || i+1 == len(inner) {
			b.WriteByte(inner[i])

			continue
		}

		i++

		switch inner[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(inner[i])
		}
	}

	return b.String(), true
}
