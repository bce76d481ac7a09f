// Package normalize produces canonical identifiers and cleaned titles for
// UK legislation records (§4.2): the canonical name UK_{type}_{year}_{number},
// the slash form {type}/{year}/{number}, and an acronym derived from the
// cleaned title.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	leadingThe    = regexp.MustCompile(`(?i)^the\s+`)
	trailingYear  = regexp.MustCompile(`\s+\d{4}$`)
	trailingRepealed = regexp.MustCompile(`(?i)\s*\((repealed|revoked)\)\s*$`)
)

// CanonicalName builds the UK_{type}_{year}_{number} identifier.
func CanonicalName(typeCode, year, number string) string {
	return fmt.Sprintf("UK_%s_%s_%s", typeCode, year, number)
}

// SlashForm builds the {type}/{year}/{number} identifier used in URLs and
// cross-references.
func SlashForm(typeCode, year, number string) string {
	return fmt.Sprintf("%s/%s/%s", typeCode, year, number)
}

// NumberInt parses number as an integer, returning nil when it is
// non-numeric (§3: "number kept as text to accept non-numeric; number_int is
// a parse of number or null").
func NumberInt(number string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil {
		return nil
	}
	return &n
}

// CleanTitle applies the idempotent title-cleaning rules of §4.2: strip a
// leading "The ", a trailing 4-digit year preceded by whitespace, and any
// trailing "(repealed)"/"(revoked)" suffix. Repeated application is a fixed
// point after the first (§8).
func CleanTitle(title string) string {
	cleaned := strings.TrimSpace(title)
	cleaned = trailingRepealed.ReplaceAllString(cleaned, "")
	cleaned = trailingYear.ReplaceAllString(cleaned, "")
	cleaned = leadingThe.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// Acronym derives the acronym of a cleaned title: the uppercase letters
// appearing in the title after stripping a leading "The" (§3).
func Acronym(cleanedTitle string) string {
	var b strings.Builder
	for _, r := range cleanedTitle {
		if unicode.IsUpper(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stopWords are removed before deriving content-word tags from a title.
var stopWords = map[string]bool{
	"the": true, "of": true, "and": true, "for": true, "a": true, "an": true,
	"to": true, "in": true, "on": true, "etc": true, "order": true,
	"regulations": true, "act": true, "amendment": true,
}

// ContentTags extracts capitalised content words from a cleaned title after
// stop-word removal, used to populate LegalRecord.Tags (§3).
func ContentTags(cleanedTitle string) []string {
	words := strings.Fields(cleanedTitle)
	tags := make([]string, 0, len(words))
	for _, w := range words {
		trimmed := strings.Trim(w, ".,()[]")
		if trimmed == "" {
			continue
		}
		if stopWords[strings.ToLower(trimmed)] {
			continue
		}
		if _, err := strconv.Atoi(trimmed); err == nil {
			continue
		}
		tags = append(tags, strings.ToUpper(trimmed[:1])+trimmed[1:])
	}
	return tags
}

// Record is the minimal shape normalize needs; callers with either
// atom-keyed or string-keyed maps adapt into this before calling Normalise
// (§4.2: "accepts either atom-keyed or string-keyed record maps" — Go has no
// atom/string map duality, so callers build a Record directly; pkg/newlaws
// fills one from listing-table cells).
type Record struct {
	TypeCode string
	Year     string
	Number   string
	TitleRaw string
}

// Normalised is the output of applying every §4.2 rule to a Record.
type Normalised struct {
	Name      string
	SlashForm string
	NumberInt *int
	TitleEN   string
	Acronym   string
	Tags      []string
}

// Normalise applies the full §4.2 pipeline to r.
func Normalise(r Record) Normalised {
	cleaned := CleanTitle(r.TitleRaw)
	return Normalised{
		Name:      CanonicalName(r.TypeCode, r.Year, r.Number),
		SlashForm: SlashForm(r.TypeCode, r.Year, r.Number),
		NumberInt: NumberInt(r.Number),
		TitleEN:   cleaned,
		Acronym:   Acronym(cleaned),
		Tags:      ContentTags(cleaned),
	}
}
