package taxa

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

func TestRunClassifiesDutyAndGatesPopimar(t *testing.T) {
	body := "The employer shall ensure that a risk assessment is carried out and monitoring is maintained."
	res := Run(body, "")

	if res.TaxaTextSource != "body" {
		t.Fatalf("expected body source, got %q", res.TaxaTextSource)
	}
	if !res.DutyType.Has(string(legalrecord.DutyTypeDuty)) {
		t.Fatalf("expected Duty in duty_type, got %v", res.DutyType.Slice())
	}
	if !res.Role.Has("employer") {
		t.Fatalf("expected employer in role, got %v", res.Role.Slice())
	}
	if len(res.Popimar) == 0 {
		t.Fatalf("expected popimar to run since duty_type contains Duty")
	}
	if !res.IsMaking() {
		t.Fatalf("expected IsMaking true")
	}
	if res.PopimarSkipped {
		t.Fatalf("expected popimar not skipped when duty_type contains Duty")
	}
	if res.ActorCount() != len(res.Role)+len(res.RoleGvt) {
		t.Fatalf("expected actor count to equal role ∪ role_gvt size, got %d", res.ActorCount())
	}
}

func TestRunSetsPopimarSkippedWithoutDutyOrResponsibility(t *testing.T) {
	res := Run("The authority may carry out a review of policy.", "")
	if !res.PopimarSkipped {
		t.Fatalf("expected popimar skipped without Duty/Responsibility in duty_type, got duty_type=%v", res.DutyType.Slice())
	}
	if len(res.Popimar) != 0 {
		t.Fatalf("expected empty popimar, got %v", res.Popimar.Slice())
	}
}

func TestPopimarGatedOffWithoutDutyOrResponsibility(t *testing.T) {
	dutyType := legalrecord.NewOrderedSet(string(legalrecord.DutyTypePower))
	out := Popimar("the authority may carry out a review of policy", dutyType)
	if len(out) != 0 {
		t.Fatalf("expected empty popimar, got %v", out.Slice())
	}
}

func TestDetectMakingSignals(t *testing.T) {
	v := DetectMaking("The Control of Substances Hazardous to Health Regulations 2002", "imposes duties on employers", 40, 5, 0)
	if v.Classification != MakingYes {
		t.Fatalf("expected making, got %v (confidence %v)", v.Classification, v.Confidence)
	}

	v2 := DetectMaking("The Some Regulations (Amendment) (Revocation) 2010", "", 0, 0, 0)
	if v2.Classification != MakingNo {
		t.Fatalf("expected not_making, got %v", v2.Classification)
	}
}

func TestReconcileMakingVerdictLogsFalseNegative(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ReconcileMakingVerdict(logger, "UK_ukpga_1974_37", MakingVerdict{MakingNo, 0.8}, true)
	if !bytes.Contains(buf.Bytes(), []byte("false negative")) {
		t.Fatalf("expected a false-negative warning to be logged, got %q", buf.String())
	}
}
