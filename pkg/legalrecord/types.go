// Package legalrecord defines the canonical in-memory shapes produced by the
// scraper-and-staged-parser pipeline: the LegalRecord persisted per law, its
// structural LAT rows, amendment annotations, cascade entries, and the
// ParsedLaw working record assembled across parser stages.
package legalrecord

import "time"

// LiveStatus is the reconciled in-force status of a LegalRecord.
type LiveStatus string

const (
	LiveInForce LiveStatus = "in_force"
	LivePartial LiveStatus = "partial"
	LiveRevoked LiveStatus = "revoked"
)

// Severity returns the reconciliation severity of a live status; higher
// wins (§4.16: revoked=3, partial=2, in_force=1).
func (s LiveStatus) Severity() int {
	switch s {
	case LiveRevoked:
		return 3
	case LivePartial:
		return 2
	case LiveInForce:
		return 1
	default:
		return 0
	}
}

// LiveSource records which sub-source produced the winning live status.
type LiveSource string

const (
	LiveSourceChanges  LiveSource = "changes"
	LiveSourceMetadata LiveSource = "metadata"
	LiveSourceBoth     LiveSource = "both"
)

// Domain is the coarse taxonomy a family maps to via its emoji prefix.
type Domain string

const (
	DomainEnvironment   Domain = "environment"
	DomainHealthSafety  Domain = "health_safety"
	DomainGovernance    Domain = "governance"
	DomainHumanResource Domain = "human_resources"
)

// DutyTypeKind is one of the four categories the taxa pipeline's DutyType
// stage can attach to a law (§4.14).
type DutyTypeKind string

const (
	DutyTypeDuty           DutyTypeKind = "Duty"
	DutyTypeRight          DutyTypeKind = "Right"
	DutyTypeResponsibility DutyTypeKind = "Responsibility"
	DutyTypePower          DutyTypeKind = "Power"
)

// PrimaryTypeCodes never populate enacted_by (§3 invariants).
var PrimaryTypeCodes = map[string]bool{
	"ukpga": true,
	"anaw":  true,
	"asp":   true,
	"nia":   true,
	"apni":  true,
}

// LawStats is one entry of an affects/affected-by aggregate, keyed by the
// other law's canonical name in LegalRecord's *StatsPerLaw maps.
type LawStats struct {
	Name    string            `json:"name"`
	Title   string            `json:"title"`
	URL     string            `json:"url"`
	Count   int               `json:"count"`
	Details []LawStatsDetail  `json:"details"`
}

// LawStatsDetail is one amendment/revocation line contributing to a LawStats.
type LawStatsDetail struct {
	Target  string `json:"target"`
	Affect  string `json:"affect"`
	Applied string `json:"applied,omitempty"`
}

// ChangeEntry records one diff applied to a LegalRecord by a later merge.
type ChangeEntry struct {
	Timestamp time.Time                `json:"timestamp"`
	Source    string                   `json:"source"`
	ChangedBy string                   `json:"changed_by"`
	Summary   string                   `json:"summary"`
	Changes   map[string]FieldChange   `json:"changes"`
}

// FieldChange is the before/after pair recorded in a ChangeEntry.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// LegalRecord is the canonical, persisted row for one piece of UK
// legislation, keyed by its unique canonical Name.
type LegalRecord struct {
	// Identifiers
	TypeCode   string `json:"type_code"`
	Year       string `json:"year"`
	Number     string `json:"number"`
	NumberInt  *int   `json:"number_int"`
	Name       string `json:"name"`       // UK_{type}_{year}_{number}
	SlashForm  string `json:"slash_form"` // {type}/{year}/{number}
	Acronym    string `json:"acronym"`

	// Description
	TitleEN  string          `json:"title_en"`
	Family   string          `json:"family"`
	FamilyII string          `json:"family_ii"`
	SICode   OrderedSet      `json:"si_code"`
	Tags     OrderedSet      `json:"tags"`
	Domain   Domain          `json:"domain"`

	// Status
	Live             LiveStatus `json:"live"`
	LiveDescription  string     `json:"live_description"`
	LiveSource       LiveSource `json:"live_source"`
	LiveConflict     bool       `json:"live_conflict"`
	LiveConflictDetail string   `json:"live_conflict_detail"`

	// Geographic
	GeoRegion []string `json:"geo_region"` // ordered: England, Wales, Scotland, Northern Ireland
	GeoExtent string   `json:"geo_extent"`
	GeoDetail string   `json:"geo_detail"`

	// Dates
	MDDate                 *time.Time `json:"md_date"`
	MDMadeDate             *time.Time `json:"md_made_date"`
	MDEnactmentDate        *time.Time `json:"md_enactment_date"`
	MDComingIntoForceDate  *time.Time `json:"md_coming_into_force_date"`
	MDModified             *time.Time `json:"md_modified"`
	MDDctValidDate         *time.Time `json:"md_dct_valid_date"`
	MDRestrictStartDate    *time.Time `json:"md_restrict_start_date"`
	LatestAmendDate        *time.Time `json:"latest_amend_date"`
	LatestChangeDate       *time.Time `json:"latest_change_date"`
	LatestRescindDate      *time.Time `json:"latest_rescind_date"`

	// Document stats
	MDTotalParas      int `json:"md_total_paras"`
	MDBodyParas       int `json:"md_body_paras"`
	MDScheduleParas   int `json:"md_schedule_paras"`
	MDAttachmentParas int `json:"md_attachment_paras"`
	MDImages          int `json:"md_images"`
	MDSubjects        OrderedSet `json:"md_subjects"`
	MDRestrictExtent  string     `json:"md_restrict_extent"`

	// Relationships
	EnactedBy   []string          `json:"enacted_by"`
	EnactedByMeta []EnactingRef   `json:"enacted_by_meta,omitempty"`
	Amending    []string          `json:"amending"`
	Rescinding  []string          `json:"rescinding"`
	AmendedBy   []string          `json:"amended_by"`
	RescindedBy []string          `json:"rescinded_by"`

	// Per-law aggregate stats
	AffectsStatsPerLaw       map[string]LawStats `json:"affects_stats_per_law"`
	AffectedByStatsPerLaw    map[string]LawStats `json:"affected_by_stats_per_law"`
	RescindingStatsPerLaw    map[string]LawStats `json:"rescinding_stats_per_law"`
	RescindedByStatsPerLaw   map[string]LawStats `json:"rescinded_by_stats_per_law"`
	SelfAmendmentsCount      int                 `json:"self_amendments_count"`

	// Taxa
	Role               UnorderedSet          `json:"role"`
	RoleGvt            UnorderedSet          `json:"role_gvt"`
	DutyType           OrderedSet            `json:"duty_type"`
	Purpose            OrderedSet            `json:"purpose"`
	Popimar            OrderedSet            `json:"popimar"`
	DutyHolder         UnorderedSet          `json:"duty_holder"`
	RightsHolder       UnorderedSet          `json:"rights_holder"`
	ResponsibilityHolder UnorderedSet        `json:"responsibility_holder"`
	PowerHolder        UnorderedSet          `json:"power_holder"`

	// Bookkeeping
	FetchedAt time.Time     `json:"fetched_at"`
	ParsedAt  time.Time     `json:"parsed_at"`
	SchemaVersion int       `json:"schema_version"`
	RecordChangeLog []ChangeEntry `json:"record_change_log"`
}

// EnactingRef is the optional parallel metadata entry for one EnactedBy id.
type EnactingRef struct {
	LawID      string `json:"law_id"`
	PatternID  string `json:"pattern_id"`
	PatternType string `json:"pattern_type"`
}

// IsPrimary reports whether r's type code is primary legislation, which
// never populates EnactedBy (§3 invariants).
func (r *LegalRecord) IsPrimary() bool {
	return PrimaryTypeCodes[r.TypeCode]
}
