package legalrecord

import "time"

// RawRecord is one row produced by the new-laws fetcher before categorisation
// (§4.5): the catalogue listing columns plus the derived identifiers.
type RawRecord struct {
	TypeCode        string    `json:"type_code"`
	Year            string    `json:"Year"`
	Number          string    `json:"Number"`
	TitleEN         string    `json:"Title_EN"`
	PublicationDate string    `json:"publication_date,omitempty"`
	Name            string    `json:"name,omitempty"`
	LegGovUKURL     string    `json:"leg_gov_uk_url,omitempty"`
	SICode          []string  `json:"si_code,omitempty"`
	Family          string    `json:"family,omitempty"`
	Selected        bool      `json:"selected"`
	FetchedAt       time.Time `json:"fetched_at,omitempty"`
}

// SessionMetadata is the summary written to metadata.json (§4.6, §6).
type SessionMetadata struct {
	SessionID          string    `json:"session_id"`
	CategorizedAt      time.Time `json:"categorized_at"`
	CountRaw           int       `json:"count_raw"`
	CountGroup1        int       `json:"count_group1"`
	CountGroup2        int       `json:"count_group2"`
	CountGroup3        int       `json:"count_group3"`
	Group1Description  string    `json:"group1_description"`
	Group2Description  string    `json:"group2_description"`
	Group3Description  string    `json:"group3_description"`
}

// AffectedLawsFile is the human mirror of the cascade table (§6).
type AffectedLawsFile struct {
	Entries            []CascadeEntry `json:"entries"`
	AllAmending        []string       `json:"all_amending"`
	AllRescinding      []string       `json:"all_rescinding"`
	AllEnactingParents []string       `json:"all_enacting_parents"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// ParseSession is the in-memory view of a named session directory (§3, §4.6):
// raw.json, inc_w_si.json, inc_wo_si.json, exc.json, metadata.json,
// affected_laws.json.
type ParseSession struct {
	SessionID string
	CreatedAt time.Time
	Labels    map[string]string

	Raw       []RawRecord
	Group1    []RawRecord // inc_w_si.json, si_matched
	Group2    []RawRecord // inc_wo_si.json, terms_matched
	Group3    map[string]RawRecord // exc.json, indexed by stringified ordinal
	Metadata  SessionMetadata
	Affected  AffectedLawsFile
}

// NewParseSession creates an empty session with the given id.
func NewParseSession(sessionID string) *ParseSession {
	return &ParseSession{
		SessionID: sessionID,
		CreatedAt: time.Now(),
		Labels:    map[string]string{},
		Group3:    map[string]RawRecord{},
	}
}

// SelectedOrAll returns the records whose Selected flag is set across the
// three groups, falling back to every group1+group2 record when none are
// selected (§3: "selected-only parsing falls back to parsing-all when no
// record is selected").
func (s *ParseSession) SelectedOrAll() []RawRecord {
	var selected []RawRecord
	for _, r := range s.Group1 {
		if r.Selected {
			selected = append(selected, r)
		}
	}
	for _, r := range s.Group2 {
		if r.Selected {
			selected = append(selected, r)
		}
	}
	for _, r := range s.Group3 {
		if r.Selected {
			selected = append(selected, r)
		}
	}
	if len(selected) > 0 {
		return selected
	}
	all := make([]RawRecord, 0, len(s.Group1)+len(s.Group2))
	all = append(all, s.Group1...)
	all = append(all, s.Group2...)
	return all
}
