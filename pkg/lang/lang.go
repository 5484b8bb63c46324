// Package lang holds the table of source languages the dictionary service
// can pair with German, and the rules for picking one from user input or
// from the process locale.
package lang

import "strings"

// Language describes one supported source language.
type Language struct {
	// Code is the two letter ISO 639-1 code, e.g. "es"
	Code string
	// Name is the English display name, e.g. "Spanish"
	Name string
	// Segment is the German language name used in result page URLs,
	// e.g. "spanisch" in "spanisch-deutsch"
	Segment string
}

// Languages lists every supported source language in priority order.
// The first entry is the fallback for unrecognized input. The slice is
// constructed once and must not be mutated.
var Languages = []Language{
	{Code: "en", Name: "English", Segment: "englisch"},
	{Code: "fr", Name: "French", Segment: "franzoesisch"},
	{Code: "es", Name: "Spanish", Segment: "spanisch"},
	{Code: "it", Name: "Italian", Segment: "italienisch"},
	{Code: "zh", Name: "Chinese", Segment: "chinesisch"},
	{Code: "ru", Name: "Russian", Segment: "russisch"},
	{Code: "pt", Name: "Portuguese", Segment: "portugiesisch"},
	{Code: "pl", Name: "Polish", Segment: "polnisch"},
}

// Default returns the language used when nothing else is specified.
func Default() Language {
	return Languages[0]
}

// Resolve maps a two letter code or a full English language name to a
// Language, case insensitively. Unrecognized input resolves to the first
// table entry instead of failing, which is what the tool always did.
func Resolve(s string) (Language, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, l := range Languages {
		if needle == l.Code || needle == strings.ToLower(l.Name) {
			return l, true
		}
	}
	return Languages[0], false
}

// FromLocale derives a Language from an LC_ALL/LANG style locale value
// such as "fr_FR.UTF-8". The POSIX defaults "", "C" and "POSIX" yield
// Default, as does any locale whose language part is not in the table.
func FromLocale(locale string) Language {
	if locale == "" || locale == "C" || locale == "POSIX" {
		return Default()
	}
	// strip codeset and modifier: "es_ES.UTF-8@euro" -> "es_ES"
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if i := strings.IndexByte(locale, '_'); i >= 0 {
		locale = locale[:i]
	}
	l, _ := Resolve(locale)
	return l
}
