// Package parser extracts translation tables from the dictionary service's
// rendered result page. All knowledge of the page markup (the content
// column id, the section class, the data-dz-name attribute, the lang
// attributes on table cells) lives in this package.
package parser

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// maxSections bounds how many section blocks of the content column are
// inspected. The page appends forum teasers and ads as further sections.
const maxSections = 5

var centerColumnMatcher = cascadia.MustCompile(`#centerColumn`)
var sectionMatcher = cascadia.MustCompile(`div.section`)
var rowMatcher = cascadia.MustCompile(`table tbody tr`)
var cellMatcher = cascadia.MustCompile(`td[lang]`)

// ParseResultHTML parses a result page and returns its sections in page
// order. sourceLang is the two letter code of the non-German side; only
// rows that carry a cell for it AND a cell for German are kept. Sections
// without a category attribute are skipped.
func ParseResultHTML(page io.Reader, sourceLang string) ([]*Section, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("can not parse page: %w", err)
	}

	center := doc.FindMatcher(centerColumnMatcher)
	if center.Length() == 0 {
		return nil, errors.New("page has no content column")
	}

	sections := center.FindMatcher(sectionMatcher)
	if sections.Length() > maxSections {
		sections = sections.Slice(0, maxSections)
	}

	result := make([]*Section, 0, sections.Length())
	sections.Each(func(i int, section *goquery.Selection) {
		name := section.AttrOr("data-dz-name", "")
		if name == "" {
			return
		}
		result = append(result, &Section{
			Name: name,
			Rows: parseRows(section, sourceLang),
		})
	})
	return result, nil
}

func parseRows(section *goquery.Selection, sourceLang string) []Row {
	var rows []Row
	section.FindMatcher(rowMatcher).Each(func(i int, tr *goquery.Selection) {
		source, target, ok := languageCells(tr, sourceLang)
		if !ok {
			return
		}
		rows = append(rows, Row{
			Source: extractText(source),
			Target: extractText(target),
		})
	})
	return rows
}

// languageCells returns the first cell of tr for each side of the language
// pair. Rows missing either side report !ok and are dropped by the caller.
func languageCells(tr *goquery.Selection, sourceLang string) (source, target *goquery.Selection, ok bool) {
	tr.ChildrenMatcher(cellMatcher).EachWithBreak(func(i int, td *goquery.Selection) bool {
		switch td.AttrOr("lang", "") {
		case sourceLang:
			if source == nil {
				source = td
			}
		case "de":
			if target == nil {
				target = td
			}
		}
		return source == nil || target == nil
	})
	return source, target, source != nil && target != nil
}

var whitespaceRegexp = regexp.MustCompile(`\s+`)

// extractText renders a cell to plain text: the page pads terms with
// no-break spaces and nested markup, so U+00A0 is dropped, whitespace runs
// collapse to single spaces and the result is trimmed.
func extractText(cell *goquery.Selection) string {
	text := strings.ReplaceAll(cell.Text(), "\u00a0", "")
	text = whitespaceRegexp.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
