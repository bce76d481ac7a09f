package lat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

var reLeadingWord = regexp.MustCompile(`^[A-Za-z]+\s+`)

// citation builds "{law_name}:{citation}" following the worked example in
// §8 ("UK_ukpga_1974_37:s.1(1)(a)"): provision-prefixed citations chain
// sub/paragraph/sub-paragraph in parentheses, while structural rows
// (part/chapter/heading/schedule) use their own label.
func citation(lawName string, sectionType legalrecord.SectionType, ctx walkContext, isAct bool) string {
	provisionPrefix := "art."
	if isAct {
		provisionPrefix = "s."
	}

	var c string
	switch sectionType {
	case legalrecord.SectionPart:
		c = "part." + stripLabel(ctx.part)
	case legalrecord.SectionChapter:
		c = "chapter." + stripLabel(ctx.chapter)
	case legalrecord.SectionHeading:
		c = "heading." + stripLabel(ctx.headingGroup)
	case legalrecord.SectionSchedule:
		c = "sch." + stripLabel(ctx.schedule)
	case legalrecord.SectionSigned:
		c = "signed"
	case legalrecord.SectionTable:
		c = "table"
	case legalrecord.SectionNote:
		c = "figure"
	default:
		if ctx.schedule != "" && ctx.provision == "" {
			// schedule-paragraph: no enclosing provision, cite relative to schedule
			c = "sch." + stripLabel(ctx.schedule)
			c += parenChain(ctx.paragraph, ctx.subParagraph)
		} else {
			c = provisionPrefix + stripLabel(ctx.provision)
			c += parenChain(ctx.sub, ctx.paragraph, ctx.subParagraph)
		}
	}
	return lawName + ":" + c
}

func parenChain(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString("(")
		b.WriteString(bareLabel(p))
		b.WriteString(")")
	}
	return b.String()
}

// stripLabel removes a leading structural word ("Part ", "Chapter ", "Schedule ")
// leaving the bare number/letter/roman-numeral label.
func stripLabel(s string) string {
	return strings.TrimSpace(reLeadingWord.ReplaceAllString(s, ""))
}

// bareLabel strips the parenthesised-number rendering legislation.gov.uk uses
// for P2/P3/P4 Pnumber text (e.g. "(1)", "(a)") down to its bare content.
func bareLabel(s string) string {
	s = stripLabel(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	return s
}

// sortKey builds a pipe-joined, zero-padded composite key so that numeric
// ordering (1, 2, ..., 10) beats lexicographic ordering (1, 10, 2) when laws
// are rendered in document order.
func sortKey(ctx walkContext) string {
	fields := []string{ctx.schedule, ctx.part, ctx.chapter, ctx.headingGroup, ctx.provision, ctx.sub, ctx.paragraph, ctx.subParagraph}
	padded := make([]string, len(fields))
	for i, f := range fields {
		padded[i] = padKey(f)
	}
	return strings.Join(padded, "|")
}

func padKey(s string) string {
	s = bareLabel(s)
	if s == "" {
		return ""
	}
	if n, err := strconv.Atoi(s); err == nil {
		return fmt.Sprintf("%06d", n)
	}
	return strings.ToUpper(s)
}

// hierarchyPath joins the non-empty structural keys in outer-to-inner order.
func hierarchyPath(ctx walkContext) string {
	var parts []string
	for _, p := range []string{ctx.part, ctx.chapter, ctx.headingGroup, ctx.schedule, ctx.provision, ctx.sub, ctx.paragraph, ctx.subParagraph} {
		if p != "" {
			parts = append(parts, stripLabel(p))
		}
	}
	return strings.Join(parts, "/")
}

// depth counts the number of populated hierarchical keys leading to this row.
func depth(sectionType legalrecord.SectionType, ctx walkContext) int {
	d := 0
	for _, p := range []string{ctx.part, ctx.chapter, ctx.headingGroup, ctx.schedule, ctx.provision, ctx.sub, ctx.paragraph, ctx.subParagraph} {
		if p != "" {
			d++
		}
	}
	return d
}
