package taxa

import (
	"sync"
	"time"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

// Result is the complete set of fields the taxa pipeline emits onto a
// ParsedLaw (§4.14), plus the per-substage timings and counts the
// taxa.classify.complete telemetry event reports (§6).
type Result struct {
	Role                 legalrecord.UnorderedSet
	RoleGvt              legalrecord.UnorderedSet
	DutyType             legalrecord.OrderedSet
	Purpose              legalrecord.OrderedSet
	Popimar              legalrecord.OrderedSet
	DutyHolder           legalrecord.UnorderedSet
	RightsHolder         legalrecord.UnorderedSet
	ResponsibilityHolder legalrecord.UnorderedSet
	PowerHolder          legalrecord.UnorderedSet
	TaxaTextSource       string
	TaxaTextLength       int

	ActorDuration    time.Duration
	DutyTypeDuration time.Duration
	PopimarDuration  time.Duration
	PurposeDuration  time.Duration
	PopimarSkipped   bool
}

// ActorCount is the size of role ∪ role_gvt (§6 taxa.classify.complete
// actor_count).
func (r Result) ActorCount() int {
	actors := legalrecord.NewUnorderedSet()
	for a := range r.Role {
		actors.Add(a)
	}
	for a := range r.RoleGvt {
		actors.Add(a)
	}
	return len(actors)
}

// Run executes the taxa pipeline: Actors, then DutyType, then Purpose and
// POPIMAR concurrently (§4.14 stage 3: "Purpose and POPIMAR run in
// parallel").
func Run(bodyText, introductionText string) Result {
	raw, source := TextSource(bodyText, introductionText)
	cleaner := NewTextCleaner()
	cleaned := cleaner.Clean(raw)

	actorStart := time.Now()
	role, roleGvt := Actors(cleaned)
	actorDuration := time.Since(actorStart)

	dutyStart := time.Now()
	duty := ClassifyDutyType(cleaned, role, roleGvt)
	dutyDuration := time.Since(dutyStart)

	popimarSkipped := !duty.DutyType.Has(string(legalrecord.DutyTypeDuty)) && !duty.DutyType.Has(string(legalrecord.DutyTypeResponsibility))

	var purpose, popimar legalrecord.OrderedSet
	var purposeDuration, popimarDuration time.Duration
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		start := time.Now()
		purpose = Purpose(cleaned)
		purposeDuration = time.Since(start)
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		popimar = Popimar(cleaned, duty.DutyType)
		popimarDuration = time.Since(start)
	}()
	wg.Wait()

	return Result{
		Role:                 role,
		RoleGvt:              roleGvt,
		DutyType:             duty.DutyType,
		Purpose:              purpose,
		Popimar:              popimar,
		DutyHolder:           duty.DutyHolder,
		RightsHolder:         duty.RightsHolder,
		ResponsibilityHolder: duty.ResponsibilityHolder,
		PowerHolder:          duty.PowerHolder,
		TaxaTextSource:       source,
		TaxaTextLength:       len(raw),

		ActorDuration:    actorDuration,
		DutyTypeDuration: dutyDuration,
		PopimarDuration:  popimarDuration,
		PurposeDuration:  purposeDuration,
		PopimarSkipped:   popimarSkipped,
	}
}

// IsMaking reports whether the classified duty_type set makes this a
// "making" law (Duty or Responsibility present) — the ground truth the
// Making-Detector is checked against (§4.14, glossary "Making law").
func (r Result) IsMaking() bool {
	return r.DutyType.Has(string(legalrecord.DutyTypeDuty)) || r.DutyType.Has(string(legalrecord.DutyTypeResponsibility))
}
