// Package render prints the extracted sections as plain text tables.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/darkclainer/leogo/pkg/parser"
)

// headerLine brackets every section header, 10 dashes on each side.
const headerLine = "----------"

// Labels returns the enabled category set for one invocation, keyed by the
// page's category name. Nouns, verbs and adjectives/adverbs are always on,
// examples and phrases are opt-in.
func Labels(withExamples, withPhrases bool) map[string]string {
	labels := map[string]string{
		"subst":  "Substantive",
		"verb":   "Verbs",
		"adjadv": "Adjectives/Adverbs",
	}
	if withExamples {
		labels["example"] = "Examples"
	}
	if withPhrases {
		labels["phrase"] = "Redewendung"
	}
	return labels
}

// Sections prints every section whose category is in labels, preserving
// page order. Sections outside the enabled set are not printed at all.
func Sections(w io.Writer, sections []*parser.Section, labels map[string]string) {
	for _, section := range sections {
		label, ok := labels[section.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n%s %s %s\n", headerLine, label, headerLine)
		table(w, section.Rows)
	}
}

// table prints rows as two aligned columns. The width pass and the print
// pass run over the same row set, so alignment is uniform within one
// section but not across sections.
func table(w io.Writer, rows []parser.Row) {
	width := sourceWidth(rows)
	for _, row := range rows {
		fmt.Fprintf(w, "%s | %s\n", pad(row.Source, width), row.Target)
	}
}

func sourceWidth(rows []parser.Row) int {
	var width int
	for _, row := range rows {
		if n := utf8.RuneCountInString(row.Source); n > width {
			width = n
		}
	}
	return width
}

// pad left-justifies s to width. Padding counts runes, not bytes, so
// umlauts do not skew the column.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
