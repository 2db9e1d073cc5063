// Package extract locates translatable strings in Svelte component source
// and reduces them into a deduplicated, line-referenced catalog.
package extract

import "fmt"

// Kind distinguishes plain strings from singular/plural pairs.
type Kind int

const (
	Simple Kind = iota
	PluralPair
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case PluralPair:
		return "plural"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Location is a source position of one marker call.
type Location struct {
	File string
	Line int // 1-based
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Occurrence is a single marker call found by the Scanner, before reduction.
type Occurrence struct {
	Content       string
	Kind          Kind
	PluralContent string // set only for PluralPair
	File          string
	Line          int
}

// Key identifies a translatable unit. Two occurrences with equal keys refer
// to the same catalog entry and are merged during reduction.
type Key struct {
	Kind          Kind
	Content       string
	PluralContent string
}

// Unit is one reduced translatable unit with every location it was seen at.
type Unit struct {
	Content       string
	Kind          Kind
	PluralContent string
	Locations     []Location
}

// Key returns the identity key used for deduplication and for matching
// catalog entries back to their unit.
func (u Unit) Key() Key {
	return Key{Kind: u.Kind, Content: u.Content, PluralContent: u.PluralContent}
}

func (o Occurrence) key() Key {
	return Key{Kind: o.Kind, Content: o.Content, PluralContent: o.PluralContent}
}
