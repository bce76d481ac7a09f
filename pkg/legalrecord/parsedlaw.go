package legalrecord

import "time"

// StageName enumerates the seven fixed parser stages (§4.15).
type StageName string

const (
	StageMetadata    StageName = "metadata"
	StageExtent      StageName = "extent"
	StageEnactedBy   StageName = "enacted_by"
	StageAmending    StageName = "amending"
	StageAmendedBy   StageName = "amended_by"
	StageRepealRevoke StageName = "repeal_revoke"
	StageTaxa        StageName = "taxa"
)

// SequentialStages is the fixed order of the six stages that run as a
// straight-line chain; taxa runs in parallel alongside them (§4.15, §5).
var SequentialStages = []StageName{
	StageMetadata, StageExtent, StageEnactedBy, StageAmending, StageAmendedBy, StageRepealRevoke,
}

// AllStages is SequentialStages with taxa appended, in telemetry/result order.
var AllStages = append(append([]StageName{}, SequentialStages...), StageTaxa)

// StageStatus enumerates the outcome recorded for a single stage run.
type StageStatus string

const (
	StageOK      StageStatus = "ok"
	StageError   StageStatus = "error"
	StageSkipped StageStatus = "skipped"
)

// StageResult is the per-stage entry in ParsedLaw.Stages (§4.15 return shape).
type StageResult struct {
	Status  StageStatus
	Data    map[string]any
	Error   string
	Summary string
	Duration time.Duration
}

// ParsedLaw is the mutable working record assembled by the staged parser
// across its seven stages, then merged into a LegalRecord at persistence
// time. Internal bookkeeping fields (Stages, Errors) are not merged;
// RecordStage maintains them.
type ParsedLaw struct {
	LegalRecord

	Stages    map[StageName]StageResult
	Errors    []string
	HasErrors bool
	Cancelled bool

	TaxaTextSource string
	TaxaTextLength int

	LiveFromMetadata LiveStatus
	LiveFromChanges  LiveStatus

	LATRows     []LATRow
	Annotations []AmendmentAnnotation
}

// NewParsedLaw initialises a ParsedLaw from a raw categorised record. It
// sets neither Name nor SlashForm; the orchestrator's Run sets Name to the
// canonical UK_{type}_{year}_{number} form and SlashForm to the slash form.
func NewParsedLaw(typeCode, year, number string) *ParsedLaw {
	p := &ParsedLaw{
		Stages: make(map[StageName]StageResult, len(AllStages)),
	}
	p.TypeCode = typeCode
	p.Year = year
	p.Number = number
	p.SchemaVersion = 1
	return p
}

// RecordStage sets the outcome of one stage and keeps HasErrors/Errors
// coherent with it (§8: "P.has_errors <=> P.errors != []").
func (p *ParsedLaw) RecordStage(name StageName, result StageResult) {
	p.Stages[name] = result
	if result.Status == StageError && result.Error != "" {
		p.Errors = append(p.Errors, result.Error)
		p.HasErrors = len(p.Errors) > 0
	}
}
