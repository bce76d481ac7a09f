package normalize

import "testing"

func TestCleanTitleIdempotent(t *testing.T) {
	cases := []string{
		"The Control of Substances Hazardous to Health Regulations 2002",
		"Waste Enforcement (England) Regulations 2023 (repealed)",
		"The Old Order (revoked)",
	}
	for _, title := range cases {
		once := CleanTitle(title)
		twice := CleanTitle(once)
		if once != twice {
			t.Fatalf("CleanTitle not idempotent for %q: once=%q twice=%q", title, once, twice)
		}
	}
}

func TestCleanTitleRules(t *testing.T) {
	got := CleanTitle("The Control of Substances Hazardous to Health Regulations 2002")
	want := "Control of Substances Hazardous to Health Regulations"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCanonicalAndSlashForm(t *testing.T) {
	if got := CanonicalName("ukpga", "1974", "37"); got != "UK_ukpga_1974_37" {
		t.Fatalf("got %q", got)
	}
	if got := SlashForm("ukpga", "1974", "37"); got != "ukpga/1974/37" {
		t.Fatalf("got %q", got)
	}
}

func TestNumberIntNonNumeric(t *testing.T) {
	if NumberInt("37") == nil || *NumberInt("37") != 37 {
		t.Fatal("expected 37 parsed")
	}
	if NumberInt("37A") != nil {
		t.Fatal("expected nil for non-numeric number")
	}
}
