package legalrecord

// This file is the one place JSONB-shape duality conversions happen (§9):
// ordered sets serialise as {"values": [...]}, unordered sets as a bare
// {key: true, ...} map. ToStoreAttrs/FromStore are the only functions
// permitted to perform this conversion; no other package should shape sets
// for storage.

// ValuesShape is the externally-stored JSONB shape for an OrderedSet.
type ValuesShape struct {
	Values []string `json:"values"`
}

// ToValuesShape converts an OrderedSet to its stored {"values": [...]} form.
func ToValuesShape(s OrderedSet) ValuesShape {
	return ValuesShape{Values: s.Slice()}
}

// FromValuesShape converts a stored {"values": [...]} form back to an OrderedSet.
func FromValuesShape(v ValuesShape) OrderedSet {
	return NewOrderedSet(v.Values...)
}

// ToFlagMapShape converts an UnorderedSet to its stored {key: true, ...} form.
func ToFlagMapShape(s UnorderedSet) map[string]bool {
	out := make(map[string]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

// FromFlagMapShape converts a stored {key: true, ...} form back to an UnorderedSet.
func FromFlagMapShape(m map[string]bool) UnorderedSet {
	out := make(UnorderedSet, len(m))
	for k, v := range m {
		if v {
			out[k] = struct{}{}
		}
	}
	return out
}

// StoreAttrs is the externally-persisted shape of a LegalRecord's set-typed
// fields: ordered sets as ValuesShape, unordered sets as flag maps. All
// scalar fields pass through LegalRecord unchanged.
type StoreAttrs struct {
	SICode     ValuesShape       `json:"si_code"`
	Tags       ValuesShape       `json:"tags"`
	MDSubjects ValuesShape       `json:"md_subjects"`
	DutyType   ValuesShape       `json:"duty_type"`
	Purpose    ValuesShape       `json:"purpose"`
	Popimar    ValuesShape       `json:"popimar"`

	Role                 map[string]bool `json:"role"`
	RoleGvt              map[string]bool `json:"role_gvt"`
	DutyHolder           map[string]bool `json:"duty_holder"`
	RightsHolder         map[string]bool `json:"rights_holder"`
	ResponsibilityHolder map[string]bool `json:"responsibility_holder"`
	PowerHolder          map[string]bool `json:"power_holder"`
}

// ToStoreAttrs converts a LegalRecord's internal plain sets into the JSONB
// shapes persisted externally (§9).
func ToStoreAttrs(r *LegalRecord) StoreAttrs {
	return StoreAttrs{
		SICode:     ToValuesShape(r.SICode),
		Tags:       ToValuesShape(r.Tags),
		MDSubjects: ToValuesShape(r.MDSubjects),
		DutyType:   ToValuesShape(r.DutyType),
		Purpose:    ToValuesShape(r.Purpose),
		Popimar:    ToValuesShape(r.Popimar),

		Role:                 ToFlagMapShape(r.Role),
		RoleGvt:              ToFlagMapShape(r.RoleGvt),
		DutyHolder:           ToFlagMapShape(r.DutyHolder),
		RightsHolder:         ToFlagMapShape(r.RightsHolder),
		ResponsibilityHolder: ToFlagMapShape(r.ResponsibilityHolder),
		PowerHolder:          ToFlagMapShape(r.PowerHolder),
	}
}

// FromStore converts stored JSONB shapes back into the plain internal sets
// on r (§9's inverse of ToStoreAttrs).
func FromStore(r *LegalRecord, attrs StoreAttrs) {
	r.SICode = FromValuesShape(attrs.SICode)
	r.Tags = FromValuesShape(attrs.Tags)
	r.MDSubjects = FromValuesShape(attrs.MDSubjects)
	r.DutyType = FromValuesShape(attrs.DutyType)
	r.Purpose = FromValuesShape(attrs.Purpose)
	r.Popimar = FromValuesShape(attrs.Popimar)

	r.Role = FromFlagMapShape(attrs.Role)
	r.RoleGvt = FromFlagMapShape(attrs.RoleGvt)
	r.DutyHolder = FromFlagMapShape(attrs.DutyHolder)
	r.RightsHolder = FromFlagMapShape(attrs.RightsHolder)
	r.ResponsibilityHolder = FromFlagMapShape(attrs.ResponsibilityHolder)
	r.PowerHolder = FromFlagMapShape(attrs.PowerHolder)
}

// IsMakingLaw reports whether r's taxa qualify it as a "making" law: LAT
// rows and annotations are persisted only for these (§3 invariants, GLOSSARY).
func IsMakingLaw(dutyType OrderedSet) bool {
	return dutyType.Has("Duty") || dutyType.Has("Responsibility")
}
