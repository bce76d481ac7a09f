package enactedby

import (
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/coolbeans/ukleg-register/pkg/httpfetch"
)

var (
	reFootnoteRef = regexp.MustCompile(`<FootnoteRef Ref="(f\d{5})"\s*/>`)
	reFootnoteID  = regexp.MustCompile(`[fc]\d{5}`)
	rePowersClause = regexp.MustCompile(`(?i)(powers conferred by|powers under|in exercise of the powers)[^.]*?([fc]\d{5})`)
	reClauseEnd   = regexp.MustCompile(`\.[A-Z]|\.\s*The Secretary`)
	reYear4       = regexp.MustCompile(`\b(1[6-9]\d{2}|20\d{2})\b`)
)

type introductionTextDoc struct {
	XMLName         xml.Name `xml:"Legislation"`
	EnactingText    string   `xml:"Body>EnactingText"`
	IntroductoryText string  `xml:"Body>IntroductoryText"`
	Footnotes       []footnoteElem `xml:"Footnotes>Footnote"`
}

type footnoteElem struct {
	ID       string `xml:"id,attr"`
	Citation []citationElem `xml:"Citation"`
}

type citationElem struct {
	URI string `xml:"URI,attr"`
}

// MatchResult is the pipeline's full output, including the per-pattern
// metadata the §4.9 metrics mode exposes for coverage auditing.
type MatchResult struct {
	LawIDs       []string
	PerPattern   map[PatternType][]string
	WinningType  PatternType
}

// Context is the (urls, years) bundle tier two/three matchers consult,
// keyed by footnote id and built from the introduction XML's footnotes
// (§9 "a function of (pattern, text, context) -> match | no_match").
type Context struct {
	URLsByFootnote map[string][]string
	Years          []string
}

// Matcher runs the three-tier pipeline against a law's introduction text.
type Matcher struct {
	client   *httpfetch.Client
	registry *Registry
}

func NewMatcher(client *httpfetch.Client, registry *Registry) *Matcher {
	return &Matcher{client: client, registry: registry}
}

// Fetch retrieves and parses the /made/introduction/data.xml for
// (typeCode, year, number), falling back to the path without /made/ (§4.9).
func (m *Matcher) Fetch(ctx context.Context, typeCode, year, number string) (*MatchResult, error) {
	primary := httpfetch.MadeIntroductionPath(typeCode, year, number)
	fallback := httpfetch.IntroductionPath(typeCode, year, number)

	result, err := m.client.FetchXMLOrFallback(ctx, primary, fallback)
	if err != nil {
		return nil, err
	}
	if result.Kind != httpfetch.KindXML {
		return nil, fmt.Errorf("enactedby: no XML available for %s/%s/%s", typeCode, year, number)
	}

	var doc introductionTextDoc
	if err := xml.Unmarshal(result.Body, &doc); err != nil {
		return nil, fmt.Errorf("enactedby: xml parse failed: %w", err)
	}

	urls := map[string][]string{}
	for _, fn := range doc.Footnotes {
		for _, c := range fn.Citation {
			urls[fn.ID] = append(urls[fn.ID], c.URI)
		}
	}

	text := reInlineFootnotes(doc.EnactingText) + " " + reInlineFootnotes(doc.IntroductoryText)
	matchCtx := Context{URLsByFootnote: urls, Years: reYear4.FindAllString(doc.EnactingText, -1)}

	return m.Match(text, matchCtx), nil
}

// reInlineFootnotes replaces <FootnoteRef Ref="f00001"/> markers with
// " f00001 " tokens so downstream regexes can see them inline (§4.9).
func reInlineFootnotes(text string) string {
	return reFootnoteRef.ReplaceAllString(text, " $1 ")
}

// Match runs the three-tier priority pipeline against already-extracted
// text and context, skipping primary legislation is the caller's
// responsibility (§4.9: "Primary legislation is skipped").
func (m *Matcher) Match(text string, ctx Context) *MatchResult {
	result := &MatchResult{PerPattern: map[PatternType][]string{}}

	specific := m.matchSpecificAct(text)
	result.PerPattern[PatternSpecificAct] = specific
	if len(specific) > 0 {
		result.LawIDs = specific
		result.WinningType = PatternSpecificAct
		return result
	}

	powers := m.matchPowersClause(text, ctx)
	result.PerPattern[PatternPowersClause] = powers
	if len(powers) > 0 {
		result.LawIDs = powers
		result.WinningType = PatternPowersClause
		return result
	}

	fallback := m.matchFootnoteFallback(text, ctx)
	result.PerPattern[PatternFootnoteFallback] = fallback
	result.LawIDs = fallback
	result.WinningType = PatternFootnoteFallback
	return result
}

// matchSpecificAct runs every registered tier-one pattern and returns the
// de-duplicated, ordered union of resolved law ids.
func (m *Matcher) matchSpecificAct(text string) []string {
	var ids []string
	seen := map[string]bool{}
	patterns := m.registry.List()
	sort.Slice(patterns, func(i, j int) bool { return patterns[i].ID < patterns[j].ID })
	for _, p := range patterns {
		if p.Regex.MatchString(text) {
			id := p.LawID.SlashForm()
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// matchPowersClause extracts the enacting clause following each
// powers-conferred-by hit, collects every footnote/citation ref in it, and
// keeps only enabling legislation (§4.9).
func (m *Matcher) matchPowersClause(text string, ctx Context) []string {
	var ids []string
	seen := map[string]bool{}

	hits := rePowersClause.FindAllStringIndex(text, -1)
	for _, loc := range hits {
		clauseEnd := len(text)
		if end := reClauseEnd.FindStringIndex(text[loc[1]:]); end != nil {
			clauseEnd = loc[1] + end[0] + 1
		}
		clause := text[loc[0]:clauseEnd]

		for _, ref := range reFootnoteID.FindAllString(clause, -1) {
			for _, url := range ctx.URLsByFootnote[ref] {
				id, ok := URLToLawID(url)
				if !ok || !IsEnablingLawID(id) {
					continue
				}
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
	}
	return ids
}

// matchFootnoteFallback only runs when the above tiers found nothing: it
// collects every footnote ref in the text and keeps URLs that textually
// contain one of the years appearing in the enacting text (§4.9).
func (m *Matcher) matchFootnoteFallback(text string, ctx Context) []string {
	var ids []string
	seen := map[string]bool{}

	for _, ref := range reFootnoteID.FindAllString(text, -1) {
		for _, url := range ctx.URLsByFootnote[ref] {
			if !urlContainsAnyYear(url, ctx.Years) {
				continue
			}
			id, ok := URLToLawID(url)
			if !ok {
				continue
			}
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func urlContainsAnyYear(url string, years []string) bool {
	for _, y := range years {
		if strings.Contains(url, y) {
			return true
		}
	}
	return false
}
