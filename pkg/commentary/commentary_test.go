package commentary

import (
	"testing"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
	"github.com/coolbeans/ukleg-register/pkg/xmltree"
)

func TestWalkAssignsSequencePerCodeType(t *testing.T) {
	body := []byte(`<Legislation><Body>
		<Commentary id="F1" Type="F"><Para><Text>first amendment note.</Text></Para></Commentary>
		<Commentary id="c7806021" Type="C"><Para><Text>first modification note.</Text></Para></Commentary>
		<Commentary id="F2" Type="F"><Para><Text>second amendment note.</Text></Para></Commentary>
	</Body></Legislation>`)

	root, err := xmltree.Parse(body)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	anns := Walk(root, "UK_ukpga_1974_37")
	if len(anns) != 3 {
		t.Fatalf("expected 3 annotations, got %d", len(anns))
	}

	if anns[0].ID != "UK_ukpga_1974_37:amendment:1" || anns[0].Code != "F1" {
		t.Errorf("unexpected first annotation: %+v", anns[0])
	}
	if anns[1].CodeType != legalrecord.CodeModification || anns[1].Code != "C:c7806021" {
		t.Errorf("unexpected second annotation: %+v", anns[1])
	}
	if anns[2].ID != "UK_ukpga_1974_37:amendment:2" {
		t.Errorf("expected amendment seq 2, got %+v", anns[2])
	}
}

func TestAttachAffectedSectionsInvertsRefs(t *testing.T) {
	rows := []legalrecord.LATRow{
		{SectionID: "law:s.1", CommentaryRefs: []string{"F1"}},
		{SectionID: "law:s.2", CommentaryRefs: []string{"F1", "C2"}},
	}
	refToSections := InvertCommentaryRefs(rows)
	anns := []legalrecord.AmendmentAnnotation{{Code: "F1"}, {Code: "C2"}}
	AttachAffectedSections(anns, refToSections)

	if len(anns[0].AffectedSections) != 2 {
		t.Fatalf("expected F1 to affect 2 sections, got %+v", anns[0].AffectedSections)
	}
	if len(anns[1].AffectedSections) != 1 || anns[1].AffectedSections[0] != "law:s.2" {
		t.Fatalf("unexpected affected sections for C2: %+v", anns[1].AffectedSections)
	}
}
