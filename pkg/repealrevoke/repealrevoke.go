// Package repealrevoke parses the resources XML for live status and
// revoking-law names (§4.11).
package repealrevoke

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/coolbeans/ukleg-register/pkg/httpfetch"
	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

type resourcesDocument struct {
	XMLName  xml.Name           `xml:"Legislation"`
	Metadata resourcesMetadata  `xml:"Metadata"`
}

type resourcesMetadata struct {
	Title           string            `xml:"title"`
	DctValid        string            `xml:"valid,attr"`
	RepealedLaw     []repealedLawElem `xml:"RepealedLaw"`
	SupersededBy    []citationElem    `xml:"SupersededBy>Citation"`
	PrimaryMetadata struct{ RestrictStartDate string `xml:"RestrictStartDate,attr"` } `xml:"PrimaryMetadata"`
}

type repealedLawElem struct {
	URI string `xml:"URI,attr"`
}

type citationElem struct {
	Name string `xml:",chardata"`
	URI  string `xml:"URI,attr"`
}

// Result is the merge-ready output of the repeal-revoke stage (§4.11).
type Result struct {
	LiveFromMetadata    legalrecord.LiveStatus
	MDDctValidDate      *time.Time
	MDRestrictStartDate *time.Time
	RevokingLawNames    []string
}

// Parser fetches and parses resources XML for a law.
type Parser struct {
	client *httpfetch.Client
}

func NewParser(client *httpfetch.Client) *Parser {
	return &Parser{client: client}
}

// Fetch retrieves the resources XML for (typeCode, year, number) (§4.11).
// A 404 is a missing-optional-data case (§7 kind 1): the stage returns
// in_force with safe defaults rather than an error.
func (p *Parser) Fetch(ctx context.Context, typeCode, year, number string) (*Result, error) {
	result, err := p.client.Fetch(ctx, httpfetch.ResourcesPath(typeCode, year, number))
	if err != nil {
		if fe, ok := err.(*httpfetch.FetchError); ok && fe.Status == 404 {
			return &Result{LiveFromMetadata: legalrecord.LiveInForce}, nil
		}
		return nil, err
	}
	if result.Kind != httpfetch.KindXML {
		return &Result{LiveFromMetadata: legalrecord.LiveInForce}, nil
	}
	return parseResources(result.Body)
}

func parseResources(body []byte) (*Result, error) {
	var doc resourcesDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("repealrevoke: xml parse failed: %w", err)
	}

	title := strings.ToUpper(doc.Metadata.Title)
	fullyRevoked := strings.Contains(title, "REVOKED") || strings.Contains(title, "REPEALED") || len(doc.Metadata.RepealedLaw) > 0

	res := &Result{}
	switch {
	case fullyRevoked:
		res.LiveFromMetadata = legalrecord.LiveRevoked
	case len(doc.Metadata.SupersededBy) > 0:
		res.LiveFromMetadata = legalrecord.LivePartial
	default:
		res.LiveFromMetadata = legalrecord.LiveInForce
	}

	for _, c := range doc.Metadata.SupersededBy {
		if c.Name != "" {
			res.RevokingLawNames = append(res.RevokingLawNames, strings.TrimSpace(c.Name))
		}
	}

	res.MDDctValidDate = parseDate(doc.Metadata.DctValid)
	res.MDRestrictStartDate = parseDate(doc.Metadata.PrimaryMetadata.RestrictStartDate)

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
