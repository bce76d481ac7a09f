// Package categorize implements the pure raw-record partition (§4.4): no
// I/O, no network, just an ordered sequence of predicate splits.
package categorize

import (
	"strconv"

	"github.com/coolbeans/ukleg-register/pkg/filters"
	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

// Result holds the three output groups.
type Result struct {
	Group1 []legalrecord.RawRecord // si_matched, highest priority
	Group2 []legalrecord.RawRecord // terms_matched
	Group3 map[string]legalrecord.RawRecord // terms_excluded ∪ title_excluded, by ordinal
}

// Categorize partitions raw into group1 (SI-matched), group2 (term-matched),
// and group3 (everything excluded), following the fixed pipeline order of
// §4.4: title-exclusion, then SI-code presence, then SI-code membership,
// then terms.
func Categorize(raw []legalrecord.RawRecord) Result {
	var titleExcluded, remainder []legalrecord.RawRecord
	for _, r := range raw {
		if filters.IsTitleExcluded(r.TitleEN) {
			titleExcluded = append(titleExcluded, r)
			continue
		}
		remainder = append(remainder, r)
	}

	var withSI, withoutSI []legalrecord.RawRecord
	for _, r := range remainder {
		if len(r.SICode) > 0 {
			withSI = append(withSI, r)
		} else {
			withoutSI = append(withoutSI, r)
		}
	}

	var siMatched, siUnmatched []legalrecord.RawRecord
	for _, r := range withSI {
		if fam, ok := filters.MatchSICode(r.SICode); ok {
			r.Family = fam.Name
			siMatched = append(siMatched, r)
		} else {
			siUnmatched = append(siUnmatched, r)
		}
	}

	termsInput := make([]legalrecord.RawRecord, 0, len(siUnmatched)+len(withoutSI))
	termsInput = append(termsInput, siUnmatched...)
	termsInput = append(termsInput, withoutSI...)

	var termsMatched, termsExcluded []legalrecord.RawRecord
	for _, r := range termsInput {
		if fam, ok := filters.MatchTerms(r.TitleEN); ok {
			r.Family = fam.Name
			termsMatched = append(termsMatched, r)
		} else {
			termsExcluded = append(termsExcluded, r)
		}
	}

	group3 := make(map[string]legalrecord.RawRecord, len(termsExcluded)+len(titleExcluded))
	ordinal := 1
	for _, r := range termsExcluded {
		group3[strconv.Itoa(ordinal)] = r
		ordinal++
	}
	for _, r := range titleExcluded {
		group3[strconv.Itoa(ordinal)] = r
		ordinal++
	}

	return Result{
		Group1: siMatched,
		Group2: termsMatched,
		Group3: group3,
	}
}
