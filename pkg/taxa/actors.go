package taxa

import (
	"regexp"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

// actorDictionary maps a lower-case phrase to whether it names a
// governmental actor (role_gvt) or an organisational/individual one (role).
var actorDictionary = map[string]bool{
	"the secretary of state":       true,
	"the authority":                true,
	"the environment agency":       true,
	"the health and safety executive": true,
	"the enforcing authority":      true,
	"local authority":              true,
	"the appropriate authority":    true,
	"a local authority":            true,
	"the minister":                 true,

	"employer":            false,
	"employee":            false,
	"occupier":             false,
	"operator":             false,
	"manufacturer":         false,
	"supplier":             false,
	"self-employed person": false,
	"duty holder":          false,
	"responsible person":   false,
	"the person in control": false,
}

// Actors extracts the disjoint role / role_gvt actor sets from cleaned text
// by dictionary-and-phrase matching (§4.14 stage 1).
func Actors(cleanedText string) (role, roleGvt legalrecord.UnorderedSet) {
	role = legalrecord.NewUnorderedSet()
	roleGvt = legalrecord.NewUnorderedSet()
	for phrase, isGvt := range actorDictionary {
		if containsPhrase(cleanedText, phrase) {
			if isGvt {
				roleGvt.Add(phrase)
			} else {
				role.Add(phrase)
			}
		}
	}
	return role, roleGvt
}

func containsPhrase(text, phrase string) bool {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
	return re.MatchString(text)
}
