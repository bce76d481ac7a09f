package legalrecord

import "testing"

func TestMergeNeverClearsWithAbsence(t *testing.T) {
	existing := &LegalRecord{
		TitleEN: "Existing Title",
		SICode:  NewOrderedSet("HEALTH AND SAFETY"),
		Live:    LiveInForce,
	}
	incoming := &LegalRecord{
		SICode: NewOrderedSet(), // empty set must not clear
	}

	Merge(existing, incoming)

	if existing.TitleEN != "Existing Title" {
		t.Fatalf("expected title preserved, got %q", existing.TitleEN)
	}
	if len(existing.SICode) != 1 || !existing.SICode.Has("HEALTH AND SAFETY") {
		t.Fatalf("expected si_code preserved, got %v", existing.SICode)
	}
	if existing.Live != LiveInForce {
		t.Fatalf("expected live preserved, got %v", existing.Live)
	}
}

func TestMergeAppliesNonEmptyIncoming(t *testing.T) {
	existing := &LegalRecord{}
	incoming := &LegalRecord{
		TitleEN: "New Title",
		Live:    LiveRevoked,
		Tags:    NewOrderedSet("Waste", "Environment"),
	}

	Merge(existing, incoming)

	if existing.TitleEN != "New Title" {
		t.Fatalf("expected title applied, got %q", existing.TitleEN)
	}
	if existing.Live != LiveRevoked {
		t.Fatalf("expected live applied, got %v", existing.Live)
	}
	if len(existing.Tags) != 2 {
		t.Fatalf("expected tags applied, got %v", existing.Tags)
	}
}

func TestStoreAttrsRoundTrip(t *testing.T) {
	r := &LegalRecord{
		SICode:  NewOrderedSet("HEALTH AND SAFETY", "WASTE"),
		RoleGvt: NewUnorderedSet("Environment Agency", "HSE"),
	}

	attrs := ToStoreAttrs(r)
	if len(attrs.SICode.Values) != 2 {
		t.Fatalf("expected 2 si codes in values shape, got %v", attrs.SICode.Values)
	}
	if !attrs.RoleGvt["HSE"] {
		t.Fatalf("expected HSE flagged true in role_gvt shape, got %v", attrs.RoleGvt)
	}

	var back LegalRecord
	FromStore(&back, attrs)
	if !back.SICode.Has("WASTE") || !back.RoleGvt.Has("Environment Agency") {
		t.Fatalf("round trip lost data: %+v", back)
	}
}

func TestIsMakingLaw(t *testing.T) {
	if !IsMakingLaw(NewOrderedSet("Duty")) {
		t.Fatal("expected Duty to qualify as making")
	}
	if !IsMakingLaw(NewOrderedSet("Responsibility")) {
		t.Fatal("expected Responsibility to qualify as making")
	}
	if IsMakingLaw(NewOrderedSet("Right", "Power")) {
		t.Fatal("expected Right/Power alone to not qualify as making")
	}
}

func TestCascadeUpgradeRule(t *testing.T) {
	e := &CascadeEntry{UpdateType: CascadeEnactingLink}
	if got := e.Upgrade(CascadeReparse); got != CascadeReparse {
		t.Fatalf("expected upgrade to reparse, got %v", got)
	}

	e2 := &CascadeEntry{UpdateType: CascadeReparse}
	if got := e2.Upgrade(CascadeEnactingLink); got != CascadeReparse {
		t.Fatalf("expected reparse to never downgrade, got %v", got)
	}
}
