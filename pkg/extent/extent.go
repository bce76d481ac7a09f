// Package extent parses the contents XML for geographic extent (§4.8):
// the overall RestrictExtent precedence chain, per-section extents, and the
// derived geo_region/geo_extent/geo_detail fields.
package extent

import (
	"context"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/coolbeans/ukleg-register/pkg/httpfetch"
)

type contentsDocument struct {
	XMLName       xml.Name       `xml:"Legislation"`
	RestrictExtent string        `xml:"RestrictExtent,attr"`
	Contents      contentsElem  `xml:"Contents"`
}

type contentsElem struct {
	RestrictExtent string              `xml:"RestrictExtent,attr"`
	Items          []contentsItemElem  `xml:"ContentsItem"`
}

type contentsItemElem struct {
	ContentRef     string             `xml:"ContentRef,attr"`
	RestrictExtent string             `xml:"RestrictExtent,attr"`
	Items          []contentsItemElem `xml:"ContentsItem"`
}

// Result is the merge-ready output of the extent stage.
type Result struct {
	GeoRegion []string
	GeoExtent string
	GeoDetail string
	SectionExtents map[string]string // content_ref -> normalised extent
}

// regionOrder is the canonical England->Wales->Scotland->Northern Ireland
// ordering used everywhere geo_region is derived or compared (§3, §4.8).
var regionOrder = []string{"England", "Wales", "Scotland", "Northern Ireland"}

// panRegionCodes maps the canonical region subsets to their pan-region code
// (§4.8); this mapping is bijective on these subsets (§8).
var panRegionCodes = map[string]string{
	"England,Wales,Scotland,Northern Ireland": "UK",
	"England,Wales,Scotland":                  "GB",
	"England,Wales":                           "E+W",
	"England,Scotland":                        "E+S",
	"England":                                 "E",
	"Wales":                                   "W",
	"Scotland":                                "S",
	"Northern Ireland":                        "NI",
}

// Parser fetches and parses contents XML for a law.
type Parser struct {
	client *httpfetch.Client
}

func NewParser(client *httpfetch.Client) *Parser {
	return &Parser{client: client}
}

// Fetch retrieves the contents XML for (typeCode, year, number), falling
// back to the bare data.xml path (§4.8).
func (p *Parser) Fetch(ctx context.Context, typeCode, year, number string) (*Result, error) {
	primary := httpfetch.ContentsPath(typeCode, year, number)
	fallback := httpfetch.ContentsFallbackPath(typeCode, year, number)

	result, err := p.client.FetchXMLOrFallback(ctx, primary, fallback)
	if err != nil {
		return nil, err
	}
	if result.Kind != httpfetch.KindXML {
		return nil, fmt.Errorf("extent: no XML available for %s/%s/%s", typeCode, year, number)
	}
	return parseContents(result.Body)
}

func parseContents(body []byte) (*Result, error) {
	var doc contentsDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("extent: xml parse failed: %w", err)
	}

	// Precedence order (§4.8): root Legislation element, then the first
	// ContentsItem, then the Contents element itself.
	raw := doc.RestrictExtent
	if raw == "" && len(doc.Contents.Items) > 0 {
		raw = doc.Contents.Items[0].RestrictExtent
	}
	if raw == "" {
		raw = doc.Contents.RestrictExtent
	}

	sectionExtents := map[string]string{}
	var collect func(items []contentsItemElem)
	collect = func(items []contentsItemElem) {
		for _, item := range items {
			if item.RestrictExtent != "" && item.ContentRef != "" {
				sectionExtents[item.ContentRef] = NormaliseExtentCode(item.RestrictExtent)
			}
			collect(item.Items)
		}
	}
	collect(doc.Contents.Items)

	if raw == "" {
		// No extent data found: leave fields untouched (§4.8).
		return &Result{SectionExtents: sectionExtents}, nil
	}

	normalised := NormaliseExtentCode(raw)
	regions := ExtentCodeToRegions(normalised)

	return &Result{
		GeoRegion:      regions,
		GeoExtent:      RegionsToPanRegion(regions),
		GeoDetail:      buildGeoDetail(sectionExtents),
		SectionExtents: sectionExtents,
	}, nil
}

// NormaliseExtentCode applies §4.8's normalisation: uppercase, replace
// "N.I." and "N.I" with "NI", delete remaining dots and spaces.
func NormaliseExtentCode(raw string) string {
	s := strings.ToUpper(raw)
	s = strings.ReplaceAll(s, "N.I.", "NI")
	s = strings.ReplaceAll(s, "N.I", "NI")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// ExtentCodeToRegions maps a normalised extent code to its ordered region
// list (England -> Wales -> Scotland -> Northern Ireland).
func ExtentCodeToRegions(code string) []string {
	has := func(sub string) bool { return strings.Contains(code, sub) }
	var regions []string
	switch {
	case code == "UK":
		regions = []string{"England", "Wales", "Scotland", "Northern Ireland"}
	case code == "GB":
		regions = []string{"England", "Wales", "Scotland"}
	default:
		if has("E") {
			regions = append(regions, "England")
		}
		if has("W") {
			regions = append(regions, "Wales")
		}
		if has("S") {
			regions = append(regions, "Scotland")
		}
		if has("NI") {
			regions = append(regions, "Northern Ireland")
		}
	}
	return orderRegions(regions)
}

func orderRegions(regions []string) []string {
	set := map[string]bool{}
	for _, r := range regions {
		set[r] = true
	}
	var out []string
	for _, r := range regionOrder {
		if set[r] {
			out = append(out, r)
		}
	}
	return out
}

// RegionsToPanRegion derives the pan-region code for a canonical region
// subset; injective on the canonical subsets (§8).
func RegionsToPanRegion(regions []string) string {
	key := strings.Join(regions, ",")
	if code, ok := panRegionCodes[key]; ok {
		return code
	}
	return strings.Join(regions, "+")
}

// buildGeoDetail groups provisions by extent, longest extent first (§4.8).
func buildGeoDetail(sectionExtents map[string]string) string {
	if len(sectionExtents) == 0 {
		return ""
	}
	byExtent := map[string][]string{}
	for ref, ext := range sectionExtents {
		byExtent[ext] = append(byExtent[ext], ref)
	}
	extents := make([]string, 0, len(byExtent))
	for ext := range byExtent {
		extents = append(extents, ext)
	}
	sort.Slice(extents, func(i, j int) bool {
		if len(extents[i]) != len(extents[j]) {
			return len(extents[i]) > len(extents[j])
		}
		return extents[i] < extents[j]
	})

	var b strings.Builder
	for i, ext := range extents {
		refs := byExtent[ext]
		sort.Strings(refs)
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", ext, strings.Join(refs, ", "))
	}
	return b.String()
}
