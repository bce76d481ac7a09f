package enactedby

import (
	"regexp"
	"testing"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	err := r.Register(&Pattern{
		ID:       "hswa-1974",
		Name:     "Health and Safety at Work etc. Act 1974",
		Type:     PatternSpecificAct,
		Priority: PatternSpecificAct.Priority(),
		Regex:    regexp.MustCompile(`(?i)health and safety at work.*?act 1974`),
		LawID:    TabledLawID{TypeCode: "ukpga", Year: "1974", Number: "37"},
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return r
}

func TestSpecificActPatternWins(t *testing.T) {
	m := NewMatcher(nil, newTestRegistry(t))
	text := "in exercise of the powers conferred by section 15 of the Health and Safety at Work etc. Act 1974"

	result := m.Match(text, Context{})
	if len(result.LawIDs) != 1 || result.LawIDs[0] != "ukpga/1974/37" {
		t.Fatalf("expected specific-act hit, got %v", result.LawIDs)
	}
	if result.WinningType != PatternSpecificAct {
		t.Fatalf("expected specific-act to win, got %v", result.WinningType)
	}
	if len(result.PerPattern[PatternPowersClause]) != 0 {
		t.Fatal("lower-priority tiers should not have run")
	}
}

func TestPowersClauseFallsThroughToFootnotes(t *testing.T) {
	m := NewMatcher(nil, NewRegistry())
	text := "powers conferred by section 2(2) of the European Communities Act f00001 ."
	ctx := Context{
		URLsByFootnote: map[string][]string{
			"f00001": {"https://www.legislation.gov.uk/id/ukpga/1972/68"},
		},
	}

	result := m.Match(text, ctx)
	if len(result.LawIDs) != 1 || result.LawIDs[0] != "ukpga/1972/68" {
		t.Fatalf("expected powers-clause hit, got %v", result.LawIDs)
	}
}

func TestURLToLawIDShapes(t *testing.T) {
	cases := map[string]string{
		"https://www.legislation.gov.uk/id/ukpga/1974/37":            "ukpga/1974/37",
		"https://www.legislation.gov.uk/european/regulation/2016/679": "eur/2016/679",
		"https://www.legislation.gov.uk/european/directive/2003/4":    "eudr/2003/4",
	}
	for url, want := range cases {
		got, ok := URLToLawID(url)
		if !ok || got != want {
			t.Fatalf("url %q: got %q ok=%v want %q", url, got, ok, want)
		}
	}
}
