package taxa

import (
	"regexp"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

type keywordClass struct {
	label   string
	pattern *regexp.Regexp
}

var purposeClasses = []keywordClass{
	{"Amendment", regexp.MustCompile(`(?i)\bamend(s|ed|ment)?\b`)},
	{"Interpretation+Definition", regexp.MustCompile(`(?i)\binterpretation\b|\bdefinitions?\b|\bmeans\b`)},
	{"Commencement", regexp.MustCompile(`(?i)\bcomes? into force\b|\bcommencement\b`)},
	{"Extent", regexp.MustCompile(`(?i)\bextends? to\b|\bextent\b`)},
	{"Repeal", regexp.MustCompile(`(?i)\brepeal(s|ed)?\b|\brevoke(s|d)?\b`)},
}

var popimarClasses = []keywordClass{
	{"Policy", regexp.MustCompile(`(?i)\bpolicy\b|\bpolicies\b`)},
	{"Organisation", regexp.MustCompile(`(?i)\borganis(e|ation)\b|\borganiz(e|ation)\b|\bcompetent person\b`)},
	{"Planning", regexp.MustCompile(`(?i)\bplan(ning)?\b|\brisk assessment\b`)},
	{"Implementation", regexp.MustCompile(`(?i)\bimplement(ation|ed|s)?\b|\bcarry out\b`)},
	{"Measurement", regexp.MustCompile(`(?i)\bmonitor(ing)?\b|\bmeasure(ment)?\b|\brecord(s|ing)?\b`)},
	{"Audit", regexp.MustCompile(`(?i)\baudit(s|ed|ing)?\b|\binspection\b`)},
	{"Review", regexp.MustCompile(`(?i)\breview(s|ed|ing)?\b`)},
}

// Purpose classifies cleanedText by function (§4.14 stage 3).
func Purpose(cleanedText string) legalrecord.OrderedSet {
	out := legalrecord.NewOrderedSet()
	for _, c := range purposeClasses {
		if c.pattern.MatchString(cleanedText) {
			out.Add(c.label)
		}
	}
	if len(out) == 0 {
		out.Add("General")
	}
	return out
}

// Popimar classifies cleanedText against the management-control taxonomy,
// gated on the law being a "making" law (duty_type contains Duty or
// Responsibility) — otherwise it always returns empty (§4.14 stage 3).
func Popimar(cleanedText string, dutyType legalrecord.OrderedSet) legalrecord.OrderedSet {
	out := legalrecord.NewOrderedSet()
	if !dutyType.Has(string(legalrecord.DutyTypeDuty)) && !dutyType.Has(string(legalrecord.DutyTypeResponsibility)) {
		return out
	}
	for _, c := range popimarClasses {
		if c.pattern.MatchString(cleanedText) {
			out.Add(c.label)
		}
	}
	return out
}
