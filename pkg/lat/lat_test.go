package lat

import (
	"testing"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
	"github.com/coolbeans/ukleg-register/pkg/xmltree"
)

func TestWalkScenario2(t *testing.T) {
	body := []byte(`<Legislation>
		<Primary>
			<Body>
				<Part>
					<Number>Part I</Number>
					<P1>
						<Pnumber>1</Pnumber>
						<P1para><Text>Duties of employers.</Text></P1para>
						<P2>
							<Pnumber>(1)</Pnumber>
							<P2para>
								<Text>It shall be the duty.</Text>
								<P3>
									<Pnumber>(a)</Pnumber>
									<P3para><Text>so far as is reasonably practicable.</Text></P3para>
								</P3>
							</P2para>
						</P2>
					</P1>
				</Part>
			</Body>
		</Primary>
	</Legislation>`)

	root, err := xmltree.Parse(body)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	rows := Walk(root, "UK_ukpga_1974_37", true)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d: %+v", len(rows), rows)
	}

	wantIDs := []string{
		"UK_ukpga_1974_37:part.I",
		"UK_ukpga_1974_37:s.1",
		"UK_ukpga_1974_37:s.1(1)",
		"UK_ukpga_1974_37:s.1(1)(a)",
	}
	wantDepths := []int{1, 2, 3, 4}
	wantTypes := []legalrecord.SectionType{
		legalrecord.SectionPart, legalrecord.SectionSection,
		legalrecord.SectionSubSection, legalrecord.SectionParagraph,
	}

	for i, row := range rows {
		if row.SectionID != wantIDs[i] {
			t.Errorf("row %d: section_id = %q, want %q", i, row.SectionID, wantIDs[i])
		}
		if row.Depth != wantDepths[i] {
			t.Errorf("row %d: depth = %d, want %d", i, row.Depth, wantDepths[i])
		}
		if row.SectionType != wantTypes[i] {
			t.Errorf("row %d: section_type = %q, want %q", i, row.SectionType, wantTypes[i])
		}
		if row.Position != i+1 {
			t.Errorf("row %d: position = %d, want %d", i, row.Position, i+1)
		}
	}
}

func TestWalkArticleModeUsesArticleVocabulary(t *testing.T) {
	body := []byte(`<Legislation><Secondary><Body><P1><Pnumber>1</Pnumber><P1para><Text>x</Text></P1para></P1></Body></Secondary></Legislation>`)
	root, err := xmltree.Parse(body)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	rows := Walk(root, "UK_uksi_2020_1", false)
	if len(rows) != 1 || rows[0].SectionType != legalrecord.SectionArticle {
		t.Fatalf("expected a single article row, got %+v", rows)
	}
	if rows[0].SectionID != "UK_uksi_2020_1:art.1" {
		t.Fatalf("section_id = %q", rows[0].SectionID)
	}
}

func TestParallelProvisionDisambiguation(t *testing.T) {
	body := []byte(`<Legislation><Primary><Body>
		<P1 RestrictExtent="E+W"><Pnumber>1</Pnumber><P1para><Text>england and wales text</Text></P1para></P1>
		<P1 RestrictExtent="S"><Pnumber>1</Pnumber><P1para><Text>scotland text</Text></P1para></P1>
	</Body></Primary></Legislation>`)
	root, err := xmltree.Parse(body)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	rows := Walk(root, "UK_ukpga_2000_1", true)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].SectionID == rows[1].SectionID {
		t.Fatalf("expected distinct section_ids for parallel provisions, got %q twice", rows[0].SectionID)
	}
	if rows[0].SectionID != "UK_ukpga_2000_1:s.1[E+W]" {
		t.Errorf("unexpected section_id: %q", rows[0].SectionID)
	}
}
