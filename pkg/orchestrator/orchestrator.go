// Package orchestrator implements the Staged Parser (§4.15): the seven-stage
// pipeline that fetches, parses, and field-selectively merges a law's
// record, running taxa concurrently with the six sequential stages, and
// reconciling live status once repeal_revoke completes.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/coolbeans/ukleg-register/pkg/amendment"
	"github.com/coolbeans/ukleg-register/pkg/enactedby"
	"github.com/coolbeans/ukleg-register/pkg/extent"
	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
	"github.com/coolbeans/ukleg-register/pkg/metadata"
	"github.com/coolbeans/ukleg-register/pkg/normalize"
	"github.com/coolbeans/ukleg-register/pkg/repealrevoke"
	"github.com/coolbeans/ukleg-register/pkg/taxa"
)

// Action is the progress callback's cooperative-cancellation verdict.
type Action string

const (
	ActionContinue Action = "continue"
	ActionAbort    Action = "abort"
)

// ProgressEvent is delivered synchronously between stages (§4.15, §5).
type ProgressEvent struct {
	Type    string // "stage_start" | "stage_complete"
	RunID   string // correlates every event and log line for one Run call
	Stage   legalrecord.StageName
	N       int
	Total   int
	Status  legalrecord.StageStatus
	Summary string
}

// ProgressFunc is expected to be cheap; returning ActionAbort triggers
// cooperative cancellation of all remaining stages (§5).
type ProgressFunc func(ProgressEvent) Action

// StageCompleteEvent is the §6 staged_parser.stage.complete event: one per
// stage, sequential or taxa.
type StageCompleteEvent struct {
	LawName    string
	TypeCode   string
	Stage      legalrecord.StageName
	Status     legalrecord.StageStatus
	DurationUs int64
}

// ParseCompleteEvent is the §6 staged_parser.parse.complete event, carrying
// the full seven-stage duration breakdown alongside the overall outcome.
type ParseCompleteEvent struct {
	LawName   string
	TypeCode  string
	HasErrors bool
	Cancelled bool

	DurationUs             int64
	MetadataDurationUs     int64
	ExtentDurationUs       int64
	EnactedByDurationUs    int64
	AmendingDurationUs     int64
	AmendedByDurationUs    int64
	RepealRevokeDurationUs int64
	TaxaDurationUs         int64

	StagesRun   int
	ErrorsCount int
}

// TaxaCompleteEvent is the §6 taxa.classify.complete event, reporting the
// taxa pipeline's own substage breakdown (§4.14).
type TaxaCompleteEvent struct {
	LawName string
	Source  string

	DurationUs         int64
	ActorDurationUs    int64
	DutyTypeDurationUs int64
	PopimarDurationUs  int64
	PurposeDurationUs  int64
	TextLength         int

	ActorCount     int
	DutyTypeCount  int
	PopimarCount   int
	PopimarSkipped bool
}

// Telemetry receives the §6 event schema as it happens during a Run: a
// stage.complete per stage, one taxa.classify.complete when the parallel
// taxa pipeline finishes, and a single parse.complete at the end.
type Telemetry interface {
	StageComplete(StageCompleteEvent)
	TaxaComplete(TaxaCompleteEvent)
	ParseComplete(ParseCompleteEvent)
}

// NoopTelemetry discards every event.
type NoopTelemetry struct{}

func (NoopTelemetry) StageComplete(StageCompleteEvent) {}
func (NoopTelemetry) TaxaComplete(TaxaCompleteEvent)   {}
func (NoopTelemetry) ParseComplete(ParseCompleteEvent) {}

// BodyTextFetcher returns the joined body text used as the taxa pipeline's
// primary text source, or "" if unavailable (§4.14).
type BodyTextFetcher func(ctx context.Context, typeCode, year, number string) (string, error)

// Runner wires the individual stage parsers into the fixed seven-stage
// pipeline.
type Runner struct {
	Metadata     *metadata.Parser
	Extent       *extent.Parser
	EnactedBy    *enactedby.Matcher
	Amendment    *amendment.Fetcher
	RepealRevoke *repealrevoke.Parser
	BodyText     BodyTextFetcher
	TitleFor     func(name string) (title, url string)

	Logger    *slog.Logger
	Telemetry Telemetry
}

func New(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Logger: logger, Telemetry: NoopTelemetry{}}
}

// Run drives one law through the seven stages, returning the assembled
// ParsedLaw (§4.15).
func (r *Runner) Run(ctx context.Context, raw legalrecord.RawRecord, progress ProgressFunc) *legalrecord.ParsedLaw {
	if progress == nil {
		progress = func(ProgressEvent) Action { return ActionContinue }
	}

	runID := uuid.NewString()

	law := legalrecord.NewParsedLaw(raw.TypeCode, raw.Year, raw.Number)
	law.Name = normalize.CanonicalName(raw.TypeCode, raw.Year, raw.Number)
	law.SlashForm = normalize.SlashForm(raw.TypeCode, raw.Year, raw.Number)
	law.TitleEN = raw.TitleEN

	r.Logger.Info("parse started", "run_id", runID, "law", law.Name)
	start := time.Now()

	taxaCtx, cancelTaxa := context.WithCancel(ctx)
	defer cancelTaxa()
	taxaDone := make(chan taxa.Result, 1)
	go r.runTaxaStage(taxaCtx, raw, taxaDone)

	var makingVerdict taxa.MakingVerdict
	cancelled := false
	total := len(legalrecord.SequentialStages)
	for i, stage := range legalrecord.SequentialStages {
		if cancelled {
			law.RecordStage(stage, legalrecord.StageResult{Status: legalrecord.StageSkipped, Error: "Cancelled by client"})
			continue
		}

		if progress(ProgressEvent{Type: "stage_start", RunID: runID, Stage: stage, N: i + 1, Total: total}) == ActionAbort {
			cancelled = true
			law.Cancelled = true
			cancelTaxa()
			law.RecordStage(stage, legalrecord.StageResult{Status: legalrecord.StageSkipped, Error: "Cancelled by client"})
			continue
		}

		stageStart := time.Now()
		partial, summary, err := r.runStage(ctx, stage, raw, law)
		duration := time.Since(stageStart)

		result := legalrecord.StageResult{Duration: duration, Summary: summary}
		if err != nil {
			result.Status = legalrecord.StageError
			result.Error = err.Error()
		} else {
			result.Status = legalrecord.StageOK
			if partial != nil {
				legalrecord.Merge(&law.LegalRecord, partial)
			}
		}
		law.RecordStage(stage, result)
		r.Telemetry.StageComplete(StageCompleteEvent{
			LawName: law.Name, TypeCode: raw.TypeCode, Stage: stage, Status: result.Status,
			DurationUs: duration.Microseconds(),
		})

		if progress(ProgressEvent{Type: "stage_complete", RunID: runID, Stage: stage, N: i + 1, Total: total, Status: result.Status, Summary: summary}) == ActionAbort {
			cancelled = true
			law.Cancelled = true
			cancelTaxa()
		}

		if stage == legalrecord.StageMetadata {
			makingVerdict = taxa.DetectMaking(law.TitleEN, "", law.MDBodyParas, law.MDScheduleParas, law.MDAttachmentParas)
		}
		if stage == legalrecord.StageRepealRevoke && result.Status == legalrecord.StageOK {
			Reconcile(law)
		}
	}

	r.awaitTaxa(law, raw.TypeCode, taxaDone, makingVerdict, cancelled)

	totalDuration := time.Since(start)
	stagesRun := 0
	for _, stage := range legalrecord.AllStages {
		if law.Stages[stage].Status != legalrecord.StageSkipped {
			stagesRun++
		}
	}
	r.Telemetry.ParseComplete(ParseCompleteEvent{
		LawName: law.Name, TypeCode: raw.TypeCode, HasErrors: law.HasErrors, Cancelled: law.Cancelled,

		DurationUs:             totalDuration.Microseconds(),
		MetadataDurationUs:     law.Stages[legalrecord.StageMetadata].Duration.Microseconds(),
		ExtentDurationUs:       law.Stages[legalrecord.StageExtent].Duration.Microseconds(),
		EnactedByDurationUs:    law.Stages[legalrecord.StageEnactedBy].Duration.Microseconds(),
		AmendingDurationUs:     law.Stages[legalrecord.StageAmending].Duration.Microseconds(),
		AmendedByDurationUs:    law.Stages[legalrecord.StageAmendedBy].Duration.Microseconds(),
		RepealRevokeDurationUs: law.Stages[legalrecord.StageRepealRevoke].Duration.Microseconds(),
		TaxaDurationUs:         law.Stages[legalrecord.StageTaxa].Duration.Microseconds(),

		StagesRun:   stagesRun,
		ErrorsCount: len(law.Errors),
	})
	r.Logger.Info("parse complete", "run_id", runID, "law", law.Name, "duration", totalDuration, "errors", len(law.Errors))

	return law
}

// runStage dispatches to the concrete stage implementation, returning a
// merge-ready partial record and a one-line telemetry summary.
func (r *Runner) runStage(ctx context.Context, stage legalrecord.StageName, raw legalrecord.RawRecord, law *legalrecord.ParsedLaw) (*legalrecord.LegalRecord, string, error) {
	switch stage {
	case legalrecord.StageMetadata:
		res, err := r.Metadata.Fetch(ctx, raw.TypeCode, raw.Year, raw.Number)
		if err != nil {
			return nil, "", err
		}
		return metadataPartial(res), fmt.Sprintf("%d subjects", len(res.MDSubjects)), nil

	case legalrecord.StageExtent:
		res, err := r.Extent.Fetch(ctx, raw.TypeCode, raw.Year, raw.Number)
		if err != nil {
			return nil, "", err
		}
		return extentPartial(res), res.GeoExtent, nil

	case legalrecord.StageEnactedBy:
		if legalrecord.PrimaryTypeCodes[raw.TypeCode] {
			return &legalrecord.LegalRecord{}, "primary law, no enacting parent", nil
		}
		res, err := r.EnactedBy.Fetch(ctx, raw.TypeCode, raw.Year, raw.Number)
		if err != nil {
			return nil, "", err
		}
		return enactedByPartial(res), fmt.Sprintf("%d enacting law(s)", len(res.LawIDs)), nil

	case legalrecord.StageAmending:
		records, err := r.Amendment.FetchAffecting(ctx, raw.TypeCode, raw.Year, raw.Number)
		if err != nil {
			return nil, "", err
		}
		partial, selfCount := amendingPartial(law.Name, records, r.TitleFor)
		law.SelfAmendmentsCount += selfCount
		return partial, fmt.Sprintf("%d amending record(s)", len(records)), nil

	case legalrecord.StageAmendedBy:
		records, err := r.Amendment.FetchAffected(ctx, raw.TypeCode, raw.Year, raw.Number)
		if err != nil {
			return nil, "", err
		}
		partial, liveFromChanges, selfCount := amendedByPartial(law.Name, records, r.TitleFor)
		law.SelfAmendmentsCount += selfCount
		law.LiveFromChanges = liveFromChanges
		return partial, fmt.Sprintf("%d amended-by record(s)", len(records)), nil

	case legalrecord.StageRepealRevoke:
		res, err := r.RepealRevoke.Fetch(ctx, raw.TypeCode, raw.Year, raw.Number)
		if err != nil {
			return nil, "", err
		}
		law.LiveFromMetadata = res.LiveFromMetadata
		return repealRevokePartial(res), string(res.LiveFromMetadata), nil

	default:
		return nil, "", fmt.Errorf("orchestrator: unknown stage %q", stage)
	}
}

// runTaxaStage executes the taxa pipeline independently of the sequential
// chain, sending its result once done (§4.15: "taxa has no dependencies and
// runs in parallel"). Nothing is sent when ctx is cancelled or when the
// pipeline panics; a panic is recovered and logged here.
func (r *Runner) runTaxaStage(ctx context.Context, raw legalrecord.RawRecord, done chan<- taxa.Result) {
	defer func() {
		if p := recover(); p != nil {
			r.Logger.Error("taxa stage crashed", "type_code", raw.TypeCode, "year", raw.Year, "number", raw.Number, "panic", p)
		}
	}()
	bodyText := ""
	if r.BodyText != nil {
		if text, err := r.BodyText(ctx, raw.TypeCode, raw.Year, raw.Number); err == nil {
			bodyText = text
		}
	}
	if ctx.Err() != nil {
		return
	}
	done <- taxa.Run(bodyText, raw.TitleEN)
}

// awaitTaxa joins the taxa future into the ParsedLaw with a 5-minute
// ceiling; timeouts and crashes become stage errors but never propagate
// further (§4.15). A crashed pipeline sends no result, so it is recorded as
// the timeout error once the ceiling passes. Cooperative cancellation of the sequential chain also
// cancels taxa (§8 scenario 6): the stage is recorded as skipped without
// waiting for the (cancelled) goroutine to report back.
func (r *Runner) awaitTaxa(law *legalrecord.ParsedLaw, typeCode string, done <-chan taxa.Result, makingVerdict taxa.MakingVerdict, cancelled bool) {
	if cancelled {
		law.RecordStage(legalrecord.StageTaxa, legalrecord.StageResult{Status: legalrecord.StageSkipped, Error: "Cancelled by client"})
		return
	}

	start := time.Now()
	select {
	case res := <-done:
		law.Role, law.RoleGvt = res.Role, res.RoleGvt
		law.DutyType, law.Purpose, law.Popimar = res.DutyType, res.Purpose, res.Popimar
		law.DutyHolder, law.RightsHolder = res.DutyHolder, res.RightsHolder
		law.ResponsibilityHolder, law.PowerHolder = res.ResponsibilityHolder, res.PowerHolder
		law.TaxaTextSource, law.TaxaTextLength = res.TaxaTextSource, res.TaxaTextLength
		duration := time.Since(start)
		law.RecordStage(legalrecord.StageTaxa, legalrecord.StageResult{
			Status: legalrecord.StageOK, Duration: duration,
			Summary: fmt.Sprintf("text source=%s", res.TaxaTextSource),
		})
		r.Telemetry.StageComplete(StageCompleteEvent{
			LawName: law.Name, TypeCode: typeCode, Stage: legalrecord.StageTaxa, Status: legalrecord.StageOK,
			DurationUs: duration.Microseconds(),
		})
		r.Telemetry.TaxaComplete(TaxaCompleteEvent{
			LawName: law.Name, Source: res.TaxaTextSource,

			DurationUs:         duration.Microseconds(),
			ActorDurationUs:    res.ActorDuration.Microseconds(),
			DutyTypeDurationUs: res.DutyTypeDuration.Microseconds(),
			PopimarDurationUs:  res.PopimarDuration.Microseconds(),
			PurposeDurationUs:  res.PurposeDuration.Microseconds(),
			TextLength:         res.TaxaTextLength,

			ActorCount:     res.ActorCount(),
			DutyTypeCount:  len(res.DutyType),
			PopimarCount:   len(res.Popimar),
			PopimarSkipped: res.PopimarSkipped,
		})
		if makingVerdict.Classification != "" {
			taxa.ReconcileMakingVerdict(r.Logger, law.Name, makingVerdict, res.IsMaking())
		}
	case <-time.After(5 * time.Minute):
		duration := time.Since(start)
		law.RecordStage(legalrecord.StageTaxa, legalrecord.StageResult{
			Status: legalrecord.StageError, Error: "taxa stage timed out after 5 minutes", Duration: duration,
		})
		r.Telemetry.StageComplete(StageCompleteEvent{
			LawName: law.Name, TypeCode: typeCode, Stage: legalrecord.StageTaxa, Status: legalrecord.StageError,
			DurationUs: duration.Microseconds(),
		})
	}
}
