// Package metadata parses the legislation.gov.uk introduction XML into the
// basic descriptive fields of a ParsedLaw (§4.7).
package metadata

import (
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/coolbeans/ukleg-register/pkg/httpfetch"
	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

// introductionDocument is the minimal USLM-flavoured shape needed from
// legislation.gov.uk's introduction/data.xml.
type introductionDocument struct {
	XMLName  xml.Name           `xml:"Legislation"`
	Metadata introductionMeta   `xml:"Metadata"`
}

type introductionMeta struct {
	Title          string             `xml:"title"`
	Description    string             `xml:"description"`
	SICodes        []string           `xml:"SecondaryMetadata>SICode"`
	Subjects       []string           `xml:"SecondaryMetadata>Subject>Value"`
	DocumentMeta   introductionDocMeta `xml:"PrimaryMetadata"`
	RestrictExtent string             `xml:"RestrictExtent,attr"`
}

type introductionDocMeta struct {
	DocumentMainType string `xml:"DocumentMainType,attr"`
	EnactmentDate    dateAttr `xml:"EnactmentDate"`
	MadeDate         dateAttr `xml:"Made"`
	CIFDate          dateAttr `xml:"ComingIntoForce"`
	BodyNumberOfProvisions  string `xml:"BodyNumberOfProvisions,attr"`
	ScheduleNumberOfProvisions string `xml:"ScheduleNumberOfProvisions,attr"`
	AttachmentNumberOfProvisions string `xml:"AttachmentNumberOfProvisions,attr"`
	DocumentStatus struct{ NumberOfImages string `xml:"NumberOfImages,attr"` } `xml:"DocumentStatus"`
}

type dateAttr struct {
	Date string `xml:"Date,attr"`
}

// Result is the merge-ready output of the metadata stage (§4.7, §4.15e).
// TitleEN is intentionally omitted here — the listing page's title is
// protected and must never be overwritten by this stage (§4.7).
type Result struct {
	Description string
	SICode      legalrecord.OrderedSet
	MDSubjects  legalrecord.OrderedSet
	MDRestrictExtent string

	MDMadeDate            *time.Time
	MDEnactmentDate       *time.Time
	MDComingIntoForceDate *time.Time

	MDTotalParas      int
	MDBodyParas       int
	MDScheduleParas   int
	MDAttachmentParas int
	MDImages          int
}

// Parser fetches and parses introduction XML for a law.
type Parser struct {
	client *httpfetch.Client
}

func NewParser(client *httpfetch.Client) *Parser {
	return &Parser{client: client}
}

// Fetch retrieves and parses the introduction XML for (typeCode, year,
// number), falling back to the /made/ variant when the primary path returns
// HTML instead of XML (§4.7).
func (p *Parser) Fetch(ctx context.Context, typeCode, year, number string) (*Result, error) {
	primary := httpfetch.IntroductionPath(typeCode, year, number)
	fallback := httpfetch.MadeIntroductionPath(typeCode, year, number)

	result, err := p.client.FetchXMLOrFallback(ctx, primary, fallback)
	if err != nil {
		return nil, err
	}
	if result.Kind != httpfetch.KindXML {
		return nil, fmt.Errorf("metadata: no XML available for %s/%s/%s", typeCode, year, number)
	}
	return parseIntroduction(result.Body)
}

func parseIntroduction(body []byte) (*Result, error) {
	var doc introductionDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("metadata: xml parse failed: %w", err)
	}

	res := &Result{
		Description:      doc.Metadata.Description,
		SICode:           legalrecord.NewOrderedSet(doc.Metadata.SICodes...),
		MDSubjects:       legalrecord.NewOrderedSet(doc.Metadata.Subjects...),
		MDRestrictExtent: doc.Metadata.RestrictExtent,
	}

	res.MDMadeDate = parseDate(doc.Metadata.DocumentMeta.MadeDate.Date)
	res.MDEnactmentDate = parseDate(doc.Metadata.DocumentMeta.EnactmentDate.Date)
	res.MDComingIntoForceDate = parseDate(doc.Metadata.DocumentMeta.CIFDate.Date)

	res.MDBodyParas = atoiOr0(doc.Metadata.DocumentMeta.BodyNumberOfProvisions)
	res.MDScheduleParas = atoiOr0(doc.Metadata.DocumentMeta.ScheduleNumberOfProvisions)
	res.MDAttachmentParas = atoiOr0(doc.Metadata.DocumentMeta.AttachmentNumberOfProvisions)
	res.MDImages = atoiOr0(doc.Metadata.DocumentMeta.DocumentStatus.NumberOfImages)
	res.MDTotalParas = res.MDBodyParas + res.MDScheduleParas + res.MDAttachmentParas

	return res, nil
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func atoiOr0(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
