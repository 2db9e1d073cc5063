// Package pofile reads and writes the flat gettext catalog text format:
// emitting POT templates from a reduced extraction catalog, and repairing
// the #: reference comments of already-generated catalog files.
package pofile

import (
	"fmt"
	"io"
	"strings"
	"time"

	"codeberg.org/svext/svext/extract"
)

// Writer emits a POT template from reduced extraction units.
type Writer struct {
	// ProjectID fills the Project-Id-Version header field.
	ProjectID string

	// Now supplies the POT-Creation-Date timestamp. time.Now is used when
	// nil; tests inject a fixed clock.
	Now func() time.Time
}

// WritePOT writes the header and one entry per unit. Units are expected in
// the order Reduce produced them; entries with an empty singular string are
// skipped, since the empty msgid is reserved for the header.
func (wr *Writer) WritePOT(w io.Writer, units []extract.Unit) error {
	if err := wr.writeHeader(w); err != nil {
		return err
	}

	for _, u := range units {
		if u.Content == "" {
			continue
		}

		fmt.Fprint(w, "\n#:")

		for _, loc := range u.Locations {
			fmt.Fprintf(w, " %s:%d", loc.File, loc.Line)
		}

		fmt.Fprintln(w)

		fmt.Fprintf(w, "msgid %s", quoteRows(u.Content))

		if u.Kind == extract.PluralPair {
			fmt.Fprintf(w, "msgid_plural %s", quoteRows(u.PluralContent))
			fmt.Fprint(w, "msgstr[0] \"\"\n")
			fmt.Fprint(w, "msgstr[1] \"\"\n")
		} else {
			fmt.Fprint(w, "msgstr \"\"\n")
		}
	}

	return nil
}

func (wr *Writer) writeHeader(w io.Writer) error {
	now := time.Now
	if wr.Now != nil {
		now = wr.Now
	}

	project := wr.ProjectID
	if project == "" {
		project = "PACKAGE VERSION"
	}

	_, err := fmt.Fprintf(w, `msgid ""
msgstr ""
"Project-Id-Version: %s\n"
"POT-Creation-Date: %s\n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"
`, project, now().UTC().Format("2006-01-02 15:04+0000"))

	return err
}

// quoteRows renders a string as one or more quoted PO lines, splitting on
// newlines the way msgcat does.
func quoteRows(s string) string {
	rows := strings.Split(s, "\n")

	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\t", `\t`)

	var b strings.Builder

	for i, row := range rows {
		row = replacer.Replace(row)

		if i == len(rows)-1 {
			fmt.Fprintf(&b, "\"%s\"\n", row)

			continue
		}

		fmt.Fprintf(&b, "\"%s\\n\"\n", row)
	}

	return b.String()
}
