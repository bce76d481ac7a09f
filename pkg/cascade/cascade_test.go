package cascade

import (
	"testing"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

func TestPushDropsSelfReference(t *testing.T) {
	tr := NewTracker()
	tr.Push("s1", "UK_ukpga_1974_37", "UK_ukpga_1974_37", legalrecord.CascadeReparse)
	if got := tr.NextPending("s1"); got != nil {
		t.Fatalf("expected self-reference to be dropped, got %+v", got)
	}
}

func TestPushUpgradesEnactingLinkToReparseNeverDowngrades(t *testing.T) {
	tr := NewTracker()
	tr.Push("s1", "UK_uksi_2020_1", "UK_ukpga_1974_37", legalrecord.CascadeEnactingLink)
	tr.Push("s1", "UK_uksi_2020_2", "UK_ukpga_1974_37", legalrecord.CascadeReparse)

	entry := tr.NextPending("s1")
	if entry == nil {
		t.Fatal("expected a pending entry")
	}
	if entry.UpdateType != legalrecord.CascadeReparse {
		t.Fatalf("expected upgrade to reparse, got %v", entry.UpdateType)
	}
	if len(entry.SourceLaws) != 2 {
		t.Fatalf("expected both sources recorded, got %v", entry.SourceLaws)
	}

	tr.Push("s1", "UK_uksi_2020_3", "UK_ukpga_1974_37", legalrecord.CascadeEnactingLink)
	entry = tr.NextPending("s1")
	if entry.UpdateType != legalrecord.CascadeReparse {
		t.Fatalf("expected reparse to stick (no downgrade), got %v", entry.UpdateType)
	}
}

func TestMarkProcessedRemovesFromPendingFIFO(t *testing.T) {
	tr := NewTracker()
	tr.Push("s1", "source", "UK_a", legalrecord.CascadeReparse)
	tr.Push("s1", "source", "UK_b", legalrecord.CascadeReparse)

	first := tr.NextPending("s1")
	if first.AffectedLaw != "UK_a" {
		t.Fatalf("expected FIFO order UK_a first, got %s", first.AffectedLaw)
	}
	tr.MarkProcessed("s1", "UK_a")

	next := tr.NextPending("s1")
	if next.AffectedLaw != "UK_b" {
		t.Fatalf("expected UK_b next, got %s", next.AffectedLaw)
	}
}

func TestPushFromRecordDerivesUpdateTypes(t *testing.T) {
	tr := NewTracker()
	record := &legalrecord.LegalRecord{
		Amending:   []string{"UK_a"},
		Rescinding: []string{"UK_b"},
		EnactedBy:  []string{"UK_c"},
	}
	tr.PushFromRecord("s1", "UK_source", record)

	pending := tr.Pending("s1")
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending entries, got %d", len(pending))
	}
	byLaw := map[string]legalrecord.CascadeUpdateType{}
	for _, e := range pending {
		byLaw[e.AffectedLaw] = e.UpdateType
	}
	if byLaw["UK_a"] != legalrecord.CascadeReparse || byLaw["UK_b"] != legalrecord.CascadeReparse {
		t.Fatalf("expected amending/rescinding to be reparse: %+v", byLaw)
	}
	if byLaw["UK_c"] != legalrecord.CascadeEnactingLink {
		t.Fatalf("expected enacted_by to be enacting_link: %+v", byLaw)
	}
}
