// Package filters implements the three independent title/SI-code tests of
// §4.3: title exclusion, family term matching, and SI-code membership, plus
// the family-emoji-to-domain mapping.
package filters

import (
	"regexp"
	"strings"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

// titleExclusions is the fixed ordered list of case-insensitive regexes that
// remove procedurally-generated instruments from consideration before any
// other filter runs (§4.3).
var titleExclusions = []*regexp.Regexp{
	regexp.MustCompile(`(?i)railway.*(station|junction).*order`),
	regexp.MustCompile(`(?i)drought\s+order`),
	regexp.MustCompile(`(?i)trunk\s+road`),
	regexp.MustCompile(`(?i)harbour\s+(empowerment|revision)\s+order`),
	regexp.MustCompile(`(?i)\bparking\b`),
	regexp.MustCompile(`(?i)development\s+consent\s+order`),
	regexp.MustCompile(`(?i)electrical?\s+system\s+order`),
	regexp.MustCompile(`(?i)compulsory\s+purchase\s+order`),
	regexp.MustCompile(`(?i)\blevel\s+crossing\b`),
}

// IsTitleExcluded reports whether title matches any fixed exclusion pattern.
func IsTitleExcluded(title string) bool {
	for _, re := range titleExclusions {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}

// Family is one named term/SI grouping with its domain-determining emoji
// prefix (§4.3, §8 scenario 1).
type Family struct {
	Name  string   // e.g. "💙 OH&S: Occupational / Personal Safety"
	Terms []string // lowercased; all must be present in the title for a term match
	SICodes []string
}

// familyCatalogue is the fixed term/SI-code → family mapping. Order matters:
// the first family whose terms are all present wins (§4.3).
var familyCatalogue = []Family{
	{
		Name:    "💙 OH&S: Occupational / Personal Safety",
		Terms:   []string{"health", "safety"},
		SICodes: []string{"HEALTH AND SAFETY"},
	},
	{
		Name:    "💚 WASTE",
		Terms:   []string{"waste"},
		SICodes: []string{"WASTE MANAGEMENT"},
	},
	{
		Name:    "💚 AIR QUALITY",
		Terms:   []string{"air", "quality"},
		SICodes: []string{"AIR POLLUTION"},
	},
	{
		Name:    "💚 WATER",
		Terms:   []string{"water", "pollution"},
		SICodes: []string{"WATER RESOURCES"},
	},
	{
		Name:    "🧡 EMPLOYMENT",
		Terms:   []string{"employment", "rights"},
		SICodes: []string{"EMPLOYMENT"},
	},
}

// familyBySICode indexes familyCatalogue by SI code for §4.3's SI-code
// membership test.
var familyBySICode = func() map[string]Family {
	idx := make(map[string]Family)
	for _, f := range familyCatalogue {
		for _, code := range f.SICodes {
			idx[strings.ToUpper(code)] = f
		}
	}
	return idx
}()

// MatchTerms returns the first family whose terms are all present in the
// lowercased title, and true if one matched (§4.3 term match).
func MatchTerms(title string) (Family, bool) {
	lower := strings.ToLower(title)
	for _, f := range familyCatalogue {
		allPresent := true
		for _, term := range f.Terms {
			if !strings.Contains(lower, term) {
				allPresent = false
				break
			}
		}
		if allPresent {
			return f, true
		}
	}
	return Family{}, false
}

// MatchSICode returns the family whose SI codes contain one of siCodes, and
// true if one matched (§4.3 SI-code membership).
func MatchSICode(siCodes []string) (Family, bool) {
	for _, code := range siCodes {
		if f, ok := familyBySICode[strings.ToUpper(code)]; ok {
			return f, true
		}
	}
	return Family{}, false
}

// domainByEmoji maps a family's leading emoji to a coarse domain (§4.3).
var domainByEmoji = map[string]legalrecord.Domain{
	"💚": legalrecord.DomainEnvironment,
	"💙": legalrecord.DomainHealthSafety,
	"🧡": legalrecord.DomainHumanResource,
	"🩶": legalrecord.DomainGovernance,
}

// DomainForFamily derives the domain from a family's leading emoji.
func DomainForFamily(familyName string) legalrecord.Domain {
	for emoji, domain := range domainByEmoji {
		if strings.HasPrefix(familyName, emoji) {
			return domain
		}
	}
	return ""
}
