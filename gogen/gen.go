// Package gogen turns a reduced extraction catalog into a generated Go
// source file of gotext calls. The generated file is what standard
// gettext-extraction tooling discovers, and its path is the intermediate
// location the reference rewriter repairs afterwards.
package gogen

import (
	"fmt"
	"io"
	"strconv"

	"codeberg.org/svext/svext/extract"
)

// Generate writes a Go source file declaring lookup-table builders with one
// gotext call per unit. pkg is the package name to declare. Units must
// already be reduced; generation preserves their order.
func Generate(w io.Writer, pkg string, units []extract.Unit) error {
	var simple, plural []extract.Unit

	for _, u := range units {
		if u.Content == "" {
			continue
		}

		if u.Kind == extract.PluralPair {
			plural = append(plural, u)
		} else {
			simple = append(simple, u)
		}
	}

	if _, err := fmt.Fprintf(w, `// Code generated by svext; DO NOT EDIT.

package %s

import "github.com/leonelquinteros/gotext"
`, pkg); err != nil {
		return err
	}

	fmt.Fprintf(w, `
// Strings builds the runtime lookup table for singular strings extracted
// from Svelte components, keyed by source string.
func Strings(l *gotext.Locale) map[string]string {
	m := make(map[string]string, %d)
`, len(simple))

	for _, u := range simple {
		q := strconv.Quote(u.Content)
		fmt.Fprintf(w, "\tm[%s] = l.Get(%s)\n", q, q)
	}

	fmt.Fprint(w, "\n\treturn m\n}\n")

	fmt.Fprintf(w, `
// PluralStrings builds the lookup table for singular/plural pairs, keyed by
// the singular source string and resolved for the given count.
func PluralStrings(l *gotext.Locale, n int) map[string]string {
	m := make(map[string]string, %d)
`, len(plural))

	for _, u := range plural {
		q := strconv.Quote(u.Content)
		fmt.Fprintf(w, "\tm[%s] = l.GetN(%s, %s, n)\n", q, q, strconv.Quote(u.PluralContent))
	}

	_, err := fmt.Fprint(w, "\n\treturn m\n}\n")

	return err
}
