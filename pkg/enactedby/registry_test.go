package enactedby

import (
	"testing"
)

// enactingActsConfigDir is the shipped specific-act table's location,
// relative to this package, matching cmd/uklegscraper's
// --enacting-acts-dir default.
const enactingActsConfigDir = "../../config/enacting-acts"

func TestNewRegistryWithDirectory_LoadsShippedEnactingActs(t *testing.T) {
	r, err := NewRegistryWithDirectory(enactingActsConfigDir)
	if err != nil {
		t.Fatalf("loading %s: %v", enactingActsConfigDir, err)
	}

	for _, id := range []string{"hswa-1974", "euwa-2018", "planning-act-2008", "taw-1992"} {
		if _, ok := r.Get(id); !ok {
			t.Errorf("expected pattern %q to be loaded from %s", id, enactingActsConfigDir)
		}
	}
}

func TestMatcher_ShippedSpecificActTable(t *testing.T) {
	r, err := NewRegistryWithDirectory(enactingActsConfigDir)
	if err != nil {
		t.Fatalf("loading %s: %v", enactingActsConfigDir, err)
	}
	m := NewMatcher(nil, r)

	cases := []struct {
		name  string
		text  string
		lawID string
	}{
		{
			name:  "HSWA 1974",
			text:  "in exercise of the powers conferred by section 15 of the Health and Safety at Work etc. Act 1974",
			lawID: "ukpga/1974/37",
		},
		{
			name:  "EUWA 2018",
			text:  "in exercise of the powers conferred by the European Union (Withdrawal) Act 2018",
			lawID: "ukpga/2018/16",
		},
		{
			name:  "Planning Act 2008",
			text:  "in exercise of the powers conferred by sections 5 and 14 of the Planning Act 2008",
			lawID: "ukpga/2008/29",
		},
		{
			name:  "Transport and Works Act 1992",
			text:  "in exercise of the powers conferred by section 1 of the Transport and Works Act 1992",
			lawID: "ukpga/1992/42",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := m.Match(tc.text, Context{})
			if len(result.LawIDs) != 1 || result.LawIDs[0] != tc.lawID {
				t.Fatalf("expected %q, got %v", tc.lawID, result.LawIDs)
			}
			if result.WinningType != PatternSpecificAct {
				t.Fatalf("expected specific-act tier to win, got %v", result.WinningType)
			}
		})
	}
}
