package orchestrator

import (
	"github.com/coolbeans/ukleg-register/pkg/amendment"
	"github.com/coolbeans/ukleg-register/pkg/enactedby"
	"github.com/coolbeans/ukleg-register/pkg/extent"
	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
	"github.com/coolbeans/ukleg-register/pkg/metadata"
	"github.com/coolbeans/ukleg-register/pkg/repealrevoke"
)

// metadataPartial adapts a metadata.Result onto the merge-ready subset of a
// LegalRecord (§4.7).
func metadataPartial(res *metadata.Result) *legalrecord.LegalRecord {
	return &legalrecord.LegalRecord{
		SICode:             res.SICode,
		MDSubjects:         res.MDSubjects,
		MDRestrictExtent:   res.MDRestrictExtent,
		MDMadeDate:         res.MDMadeDate,
		MDEnactmentDate:    res.MDEnactmentDate,
		MDComingIntoForceDate: res.MDComingIntoForceDate,
		MDTotalParas:       res.MDTotalParas,
		MDBodyParas:        res.MDBodyParas,
		MDScheduleParas:    res.MDScheduleParas,
		MDAttachmentParas:  res.MDAttachmentParas,
		MDImages:           res.MDImages,
	}
}

// extentPartial adapts an extent.Result onto a LegalRecord (§4.8).
func extentPartial(res *extent.Result) *legalrecord.LegalRecord {
	return &legalrecord.LegalRecord{
		GeoRegion: res.GeoRegion,
		GeoExtent: res.GeoExtent,
		GeoDetail: res.GeoDetail,
	}
}

// enactedByPartial adapts an enactedby.MatchResult onto a LegalRecord (§4.9).
func enactedByPartial(res *enactedby.MatchResult) *legalrecord.LegalRecord {
	if res == nil {
		return &legalrecord.LegalRecord{}
	}
	meta := make([]legalrecord.EnactingRef, 0, len(res.LawIDs))
	for _, id := range res.LawIDs {
		meta = append(meta, legalrecord.EnactingRef{LawID: id, PatternType: patternTypeLabel(res.WinningType)})
	}
	return &legalrecord.LegalRecord{
		EnactedBy:     res.LawIDs,
		EnactedByMeta: meta,
	}
}

func patternTypeLabel(t enactedby.PatternType) string {
	switch t {
	case enactedby.PatternSpecificAct:
		return "specific_act"
	case enactedby.PatternPowersClause:
		return "powers_clause"
	case enactedby.PatternFootnoteFallback:
		return "footnote_fallback"
	default:
		return ""
	}
}

// amendingPartial adapts the affecting-changes fetch (this law amends
// others) onto a LegalRecord (§4.10).
func amendingPartial(sourceLawName string, records []amendment.Record, titleFor func(string) (string, string)) (*legalrecord.LegalRecord, int) {
	amendments, revocations, selfCount := amendment.Partition(sourceLawName, records)

	combined := append(append([]amendment.Record{}, amendments...), revocations...)
	return &legalrecord.LegalRecord{
		Amending:           dedupNames(amendments),
		Rescinding:         dedupNames(revocations),
		AffectsStatsPerLaw: amendment.AggregatePerLaw(combined, titleFor),
		RescindingStatsPerLaw: amendment.AggregatePerLaw(revocations, titleFor),
	}, selfCount
}

// amendedByPartial adapts the affected-changes fetch (others amend this
// law) onto a LegalRecord, also deriving live_from_changes (§4.10).
func amendedByPartial(sourceLawName string, records []amendment.Record, titleFor func(string) (string, string)) (*legalrecord.LegalRecord, legalrecord.LiveStatus, int) {
	amendments, revocations, selfCount := amendment.Partition(sourceLawName, records)

	combined := append(append([]amendment.Record{}, amendments...), revocations...)
	partial := &legalrecord.LegalRecord{
		AmendedBy:              dedupNames(amendments),
		RescindedBy:            dedupNames(revocations),
		AffectedByStatsPerLaw:  amendment.AggregatePerLaw(combined, titleFor),
		RescindedByStatsPerLaw: amendment.AggregatePerLaw(revocations, titleFor),
	}
	return partial, amendment.LiveFromChanges(revocations), selfCount
}

func dedupNames(records []amendment.Record) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range records {
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		out = append(out, r.Name)
	}
	return out
}

// repealRevokePartial adapts a repealrevoke.Result onto a LegalRecord
// (§4.11). res.RevokingLawNames is deliberately not written onto
// RescindedBy: that field is already populated by amendedByPartial from the
// Amendment Fetcher's /changes/affected table (§4.10), which is the richer,
// per-change source, and mergeStrings replaces wholesale on any non-empty
// incoming value — writing the resources-XML names here, if the Repeal-
// Revoke stage ran after Amendment, would silently clobber that richer list
// with a sparser one instead of adding to it.
func repealRevokePartial(res *repealrevoke.Result) *legalrecord.LegalRecord {
	return &legalrecord.LegalRecord{
		MDDctValidDate:      res.MDDctValidDate,
		MDRestrictStartDate: res.MDRestrictStartDate,
	}
}
