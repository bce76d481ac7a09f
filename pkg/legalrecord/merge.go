package legalrecord

import "time"

// Merge applies the field-selective merge rule of §9: a field on existing is
// updated only when the corresponding field on incoming is present and
// non-nil, non-empty (empty string, empty slice, empty map all count as
// absent). It never clears a previously-set value with absence, so merging
// is monotone (§8). Bookkeeping fields are outside Merge's scope: it does
// not touch LegalRecord's FetchedAt, ParsedAt, SchemaVersion or
// RecordChangeLog, and ParsedLaw's Stages and Errors are not LegalRecord
// fields at all.
func Merge(existing *LegalRecord, incoming *LegalRecord) {
	mergeString(&existing.TitleEN, incoming.TitleEN)
	// title_en listing-page value is protected by callers (§4.7): the
	// metadata stage must not pass a non-empty TitleEN into incoming when
	// merging its own result, leaving this generic rule safe to apply.
	mergeString(&existing.Family, incoming.Family)
	mergeString(&existing.FamilyII, incoming.FamilyII)
	mergeString(&existing.Acronym, incoming.Acronym)
	mergeString(&existing.SlashForm, incoming.SlashForm)
	mergeString(&existing.Number, incoming.Number)
	mergeString(&existing.Year, incoming.Year)
	mergeString(&existing.TypeCode, incoming.TypeCode)
	mergeString(&existing.Name, incoming.Name)

	if incoming.NumberInt != nil {
		existing.NumberInt = incoming.NumberInt
	}
	if incoming.Domain != "" && existing.Domain == "" {
		// domain is never overwritten once non-empty (§3 invariants).
		existing.Domain = incoming.Domain
	}

	mergeOrderedSet(&existing.SICode, incoming.SICode)
	mergeOrderedSet(&existing.Tags, incoming.Tags)
	mergeOrderedSet(&existing.MDSubjects, incoming.MDSubjects)
	mergeOrderedSet(&existing.DutyType, incoming.DutyType)
	mergeOrderedSet(&existing.Purpose, incoming.Purpose)
	mergeOrderedSet(&existing.Popimar, incoming.Popimar)

	mergeUnorderedSet(&existing.Role, incoming.Role)
	mergeUnorderedSet(&existing.RoleGvt, incoming.RoleGvt)
	mergeUnorderedSet(&existing.DutyHolder, incoming.DutyHolder)
	mergeUnorderedSet(&existing.RightsHolder, incoming.RightsHolder)
	mergeUnorderedSet(&existing.ResponsibilityHolder, incoming.ResponsibilityHolder)
	mergeUnorderedSet(&existing.PowerHolder, incoming.PowerHolder)

	if incoming.Live != "" {
		existing.Live = incoming.Live
	}
	mergeString((*string)(&existing.LiveDescription), incoming.LiveDescription)
	if incoming.LiveSource != "" {
		existing.LiveSource = incoming.LiveSource
	}
	if incoming.LiveConflict {
		existing.LiveConflict = true
	}
	mergeString(&existing.LiveConflictDetail, incoming.LiveConflictDetail)

	if len(incoming.GeoRegion) > 0 {
		existing.GeoRegion = incoming.GeoRegion
	}
	mergeString(&existing.GeoExtent, incoming.GeoExtent)
	mergeString(&existing.GeoDetail, incoming.GeoDetail)
	mergeString(&existing.MDRestrictExtent, incoming.MDRestrictExtent)

	mergeTime(&existing.MDDate, incoming.MDDate)
	mergeTime(&existing.MDMadeDate, incoming.MDMadeDate)
	mergeTime(&existing.MDEnactmentDate, incoming.MDEnactmentDate)
	mergeTime(&existing.MDComingIntoForceDate, incoming.MDComingIntoForceDate)
	mergeTime(&existing.MDModified, incoming.MDModified)
	mergeTime(&existing.MDDctValidDate, incoming.MDDctValidDate)
	mergeTime(&existing.MDRestrictStartDate, incoming.MDRestrictStartDate)
	mergeTime(&existing.LatestAmendDate, incoming.LatestAmendDate)
	mergeTime(&existing.LatestChangeDate, incoming.LatestChangeDate)
	mergeTime(&existing.LatestRescindDate, incoming.LatestRescindDate)

	mergeInt(&existing.MDTotalParas, incoming.MDTotalParas)
	mergeInt(&existing.MDBodyParas, incoming.MDBodyParas)
	mergeInt(&existing.MDScheduleParas, incoming.MDScheduleParas)
	mergeInt(&existing.MDAttachmentParas, incoming.MDAttachmentParas)
	mergeInt(&existing.MDImages, incoming.MDImages)
	mergeInt(&existing.SelfAmendmentsCount, incoming.SelfAmendmentsCount)

	mergeStrings(&existing.EnactedBy, incoming.EnactedBy)
	if len(incoming.EnactedByMeta) > 0 {
		existing.EnactedByMeta = incoming.EnactedByMeta
	}
	mergeStrings(&existing.Amending, incoming.Amending)
	mergeStrings(&existing.Rescinding, incoming.Rescinding)
	mergeStrings(&existing.AmendedBy, incoming.AmendedBy)
	mergeStrings(&existing.RescindedBy, incoming.RescindedBy)

	mergeStatsMap(&existing.AffectsStatsPerLaw, incoming.AffectsStatsPerLaw)
	mergeStatsMap(&existing.AffectedByStatsPerLaw, incoming.AffectedByStatsPerLaw)
	mergeStatsMap(&existing.RescindingStatsPerLaw, incoming.RescindingStatsPerLaw)
	mergeStatsMap(&existing.RescindedByStatsPerLaw, incoming.RescindedByStatsPerLaw)
}

func mergeString(existing *string, incoming string) {
	if incoming != "" {
		*existing = incoming
	}
}

func mergeStrings(existing *[]string, incoming []string) {
	if len(incoming) > 0 {
		*existing = incoming
	}
}

func mergeInt(existing *int, incoming int) {
	if incoming != 0 {
		*existing = incoming
	}
}

func mergeTime(existing **time.Time, incoming *time.Time) {
	if incoming != nil {
		*existing = incoming
	}
}

func mergeOrderedSet(existing *OrderedSet, incoming OrderedSet) {
	if len(incoming) > 0 {
		*existing = incoming
	}
}

func mergeUnorderedSet(existing *UnorderedSet, incoming UnorderedSet) {
	if len(incoming) > 0 {
		*existing = incoming
	}
}

func mergeStatsMap(existing *map[string]LawStats, incoming map[string]LawStats) {
	if len(incoming) > 0 {
		*existing = incoming
	}
}
