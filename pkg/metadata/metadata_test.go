package metadata

import "testing"

const sampleIntroductionXML = `<?xml version="1.0"?>
<Legislation>
  <ukm:Metadata xmlns:ukm="http://www.legislation.gov.uk/namespaces/metadata" xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>The Control of Substances Hazardous to Health Regulations 2002</dc:title>
    <dc:description>Regulations controlling hazardous substances.</dc:description>
    <ukm:SecondaryMetadata>
      <ukm:SICode Value="HEALTH AND SAFETY">HEALTH AND SAFETY</ukm:SICode>
      <ukm:Subject>
        <ukm:Value>Health and Safety</ukm:Value>
      </ukm:Subject>
    </ukm:SecondaryMetadata>
    <ukm:PrimaryMetadata DocumentMainType="UnitedKingdomStatutoryInstrument" BodyNumberOfProvisions="22" ScheduleNumberOfProvisions="8" AttachmentNumberOfProvisions="0">
      <ukm:Made Date="2002-06-13"/>
      <ukm:ComingIntoForce Date="2002-11-21"/>
    </ukm:PrimaryMetadata>
  </ukm:Metadata>
</Legislation>`

func TestParseIntroduction(t *testing.T) {
	res, err := parseIntroduction([]byte(sampleIntroductionXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Description == "" {
		t.Fatal("expected description")
	}
	if !res.SICode.Has("HEALTH AND SAFETY") {
		t.Fatalf("expected SI code parsed, got %v", res.SICode)
	}
	if res.MDBodyParas != 22 || res.MDScheduleParas != 8 {
		t.Fatalf("unexpected para counts: body=%d schedule=%d", res.MDBodyParas, res.MDScheduleParas)
	}
	if res.MDMadeDate == nil || res.MDMadeDate.Year() != 2002 {
		t.Fatalf("expected made date parsed, got %v", res.MDMadeDate)
	}
}
