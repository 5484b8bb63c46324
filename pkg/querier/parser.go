package querier

import (
	"encoding/json"
	"io"

	"github.com/darkclainer/leogo/pkg/parser"
)

type Parser interface {
	ParseResult(page io.Reader, sourceLang string) ([]*parser.Section, error)
}

type HTMLParser struct{}

func (p *HTMLParser) ParseResult(page io.Reader, sourceLang string) ([]*parser.Section, error) {
	return parser.ParseResultHTML(page, sourceLang)
}

// JSONParser parses sections from JSON format. Use it for testing
type JSONParser struct{}

func (p *JSONParser) ParseResult(page io.Reader, sourceLang string) ([]*parser.Section, error) {
	var sections []*parser.Section
	if err := json.NewDecoder(page).Decode(&sections); err != nil {
		return nil, err
	}
	return sections, nil
}
