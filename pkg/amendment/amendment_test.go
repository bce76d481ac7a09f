package amendment

import (
	"testing"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

func TestPartitionSeparatesSelfAmendments(t *testing.T) {
	records := []Record{
		{Name: "UK_uksi_2020_100", Target: "reg. 1", Affect: "inserted"},
		{Name: "UK_uksi_2020_100", Target: "reg. 2", Affect: "substituted"},
		{Name: "UK_ukpga_1974_37", Target: "s.1", Affect: "repealed in full"},
	}
	amendments, revocations, selfCount := Partition("UK_uksi_2020_100", records)
	if selfCount != 2 {
		t.Fatalf("expected 2 self-amendments, got %d", selfCount)
	}
	if len(amendments) != 0 || len(revocations) != 1 {
		t.Fatalf("expected self-amendments excluded from both outputs, got amendments=%v revocations=%v", amendments, revocations)
	}
}

func TestAggregatePerLawScenario5(t *testing.T) {
	records := []Record{
		{Name: "UK_uksi_2020_100", Target: "reg. 1", Affect: "inserted", Applied: "Not yet"},
		{Name: "UK_uksi_2020_100", Target: "reg. 2", Affect: "substituted", Applied: "Yes"},
	}
	stats := AggregatePerLaw(records, nil)
	s, ok := stats["UK_uksi_2020_100"]
	if !ok {
		t.Fatal("expected stats entry")
	}
	if s.Count != 2 {
		t.Fatalf("expected count 2, got %d", s.Count)
	}
	if s.Details[0].Target != "reg. 1" || s.Details[0].Affect != "inserted" || s.Details[0].Applied != "Not yet" {
		t.Fatalf("unexpected first detail: %+v", s.Details[0])
	}
}

func TestLiveFromChanges(t *testing.T) {
	if got := LiveFromChanges(nil); got != legalrecord.LiveInForce {
		t.Fatalf("expected in_force with no revocations, got %v", got)
	}
	if got := LiveFromChanges([]Record{{Affect: "repealed in full"}}); got != legalrecord.LiveRevoked {
		t.Fatalf("expected revoked, got %v", got)
	}
	if got := LiveFromChanges([]Record{{Affect: "repealed in part"}}); got != legalrecord.LivePartial {
		t.Fatalf("expected partial, got %v", got)
	}
}
