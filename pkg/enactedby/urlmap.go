package enactedby

import "regexp"

var (
	reIDURL     = regexp.MustCompile(`/id/([a-z]+)/(\d{4})/(\w+)`)
	reEURegURL  = regexp.MustCompile(`/european/regulation/(\d{4})/(\w+)`)
	reEUDirURL  = regexp.MustCompile(`/european/directive/(\d{4})/(\w+)`)
)

// enablingTypeCodes are the type codes kept when resolving powers-clause
// footnote URLs to law ids (§4.9): only enabling legislation survives.
var enablingTypeCodes = map[string]bool{
	"ukpga": true, "anaw": true, "asp": true, "nia": true, "apni": true,
	"ukla": true, "eur": true, "eudr": true, "eut": true,
}

// URLToLawID maps a legislation.gov.uk URL to a slash-form law id per §4.9's
// three recognised shapes, or returns ok=false when none match.
func URLToLawID(url string) (string, bool) {
	if m := reEURegURL.FindStringSubmatch(url); m != nil {
		return "eur/" + m[1] + "/" + m[2], true
	}
	if m := reEUDirURL.FindStringSubmatch(url); m != nil {
		return "eudr/" + m[1] + "/" + m[2], true
	}
	if m := reIDURL.FindStringSubmatch(url); m != nil {
		return m[1] + "/" + m[2] + "/" + m[3], true
	}
	return "", false
}

// IsEnablingLawID reports whether a slash-form law id's type code is one of
// the enabling legislation types kept by the powers-clause tier (§4.9).
func IsEnablingLawID(lawID string) bool {
	typeCode := typeCodeOf(lawID)
	return enablingTypeCodes[typeCode]
}

func typeCodeOf(slashForm string) string {
	for i, c := range slashForm {
		if c == '/' {
			return slashForm[:i]
		}
	}
	return slashForm
}
