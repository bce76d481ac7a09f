package taxa

import (
	"regexp"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

type dutySignal struct {
	dutyType legalrecord.DutyTypeKind
	pattern  *regexp.Regexp
}

var dutySignals = []dutySignal{
	{legalrecord.DutyTypeDuty, regexp.MustCompile(`(?i)\bshall\b|\bmust\b`)},
	{legalrecord.DutyTypeResponsibility, regexp.MustCompile(`(?i)\bresponsible for\b|\bresponsibility\b`)},
	{legalrecord.DutyTypePower, regexp.MustCompile(`(?i)\bmay\b|\bpower to\b|\bempowered to\b`)},
	{legalrecord.DutyTypeRight, regexp.MustCompile(`(?i)\bentitled to\b|\bright to\b`)},
}

// DutyTypeResult is the per-category classification and its holder maps
// produced by joining actor sets with attested duty-type contexts
// (§4.14 stage 2).
type DutyTypeResult struct {
	DutyType              legalrecord.OrderedSet
	DutyHolder            legalrecord.UnorderedSet
	RightsHolder          legalrecord.UnorderedSet
	ResponsibilityHolder  legalrecord.UnorderedSet
	PowerHolder           legalrecord.UnorderedSet
}

// ClassifyDutyType finds which of {Duty, Right, Responsibility, Power}
// apply in cleanedText and associates every discovered actor (role ∪
// role_gvt) with each matched category.
func ClassifyDutyType(cleanedText string, role, roleGvt legalrecord.UnorderedSet) DutyTypeResult {
	res := DutyTypeResult{
		DutyType:             legalrecord.NewOrderedSet(),
		DutyHolder:           legalrecord.NewUnorderedSet(),
		RightsHolder:         legalrecord.NewUnorderedSet(),
		ResponsibilityHolder: legalrecord.NewUnorderedSet(),
		PowerHolder:          legalrecord.NewUnorderedSet(),
	}

	actors := legalrecord.NewUnorderedSet()
	for a := range role {
		actors.Add(a)
	}
	for a := range roleGvt {
		actors.Add(a)
	}

	for _, sig := range dutySignals {
		if !sig.pattern.MatchString(cleanedText) {
			continue
		}
		res.DutyType.Add(string(sig.dutyType))
		holder := holderSetFor(res, sig.dutyType)
		for a := range actors {
			holder.Add(a)
		}
	}
	return res
}

func holderSetFor(res DutyTypeResult, kind legalrecord.DutyTypeKind) legalrecord.UnorderedSet {
	switch kind {
	case legalrecord.DutyTypeDuty:
		return res.DutyHolder
	case legalrecord.DutyTypeRight:
		return res.RightsHolder
	case legalrecord.DutyTypeResponsibility:
		return res.ResponsibilityHolder
	default:
		return res.PowerHolder
	}
}
