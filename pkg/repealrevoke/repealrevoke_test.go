package repealrevoke

import (
	"testing"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

func TestParseResourcesRevokedByTitle(t *testing.T) {
	body := []byte(`<Legislation>
		<ukm:Metadata xmlns:ukm="x" xmlns:dc="y">
			<dc:title>The Old Order 1990 (REVOKED)</dc:title>
		</ukm:Metadata>
	</Legislation>`)
	res, err := parseResources(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LiveFromMetadata != legalrecord.LiveRevoked {
		t.Fatalf("expected revoked, got %v", res.LiveFromMetadata)
	}
}

func TestParseResourcesPartialViaSupersededBy(t *testing.T) {
	body := []byte(`<Legislation>
		<ukm:Metadata xmlns:ukm="x" xmlns:dc="y">
			<dc:title>Some Regulations 2010</dc:title>
			<ukm:SupersededBy>
				<ukm:Citation URI="https://www.legislation.gov.uk/id/uksi/2015/1">Regs 2015</ukm:Citation>
			</ukm:SupersededBy>
		</ukm:Metadata>
	</Legislation>`)
	res, err := parseResources(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LiveFromMetadata != legalrecord.LivePartial {
		t.Fatalf("expected partial, got %v", res.LiveFromMetadata)
	}
	if len(res.RevokingLawNames) != 1 {
		t.Fatalf("expected 1 revoking law name, got %v", res.RevokingLawNames)
	}
}
