// Package taxa implements the Taxa Pipeline and Making-Detector (§4.14):
// actor/duty-type/purpose/POPIMAR classification over a law's text, plus a
// lightweight pre-filter used to sanity-check the pipeline's own output.
package taxa

import (
	"regexp"
	"strings"
)

// blacklist strips boilerplate and footnote artefacts shared by every
// downstream stage, so no stage re-cleans the same text (§4.14).
var blacklist = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[F\d+.*?\]`),          // inline amendment markers
	regexp.MustCompile(`(?i)\bF\d{3,}\b`),          // bare footnote ids
	regexp.MustCompile(`(?i)subject to subsection.*?,`),
	regexp.MustCompile(`\s+`),
}

// TextCleaner normalises raw law text before actor/duty/purpose/POPIMAR
// classification.
type TextCleaner struct{}

func NewTextCleaner() *TextCleaner { return &TextCleaner{} }

// Clean lowercases and strips boilerplate, returning text ready for
// dictionary-and-phrase matching.
func (c *TextCleaner) Clean(raw string) string {
	text := strings.ToLower(raw)
	for _, re := range blacklist {
		text = re.ReplaceAllString(text, " ")
	}
	return strings.TrimSpace(text)
}

// TextSource selects body text when available, falling back to
// introduction text (§4.14).
func TextSource(bodyText, introductionText string) (text, source string) {
	if strings.TrimSpace(bodyText) != "" {
		return bodyText, "body"
	}
	return introductionText, "introduction"
}
