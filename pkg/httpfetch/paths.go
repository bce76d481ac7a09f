package httpfetch

import "fmt"

// Path templates to the legislation.gov.uk endpoints (§6).

func NewLawsPath(typeCode, date string) string {
	if typeCode == "" {
		return fmt.Sprintf("/new/%s?results-count=1000", date)
	}
	return fmt.Sprintf("/new/%s/%s?results-count=1000", typeCode, date)
}

func IntroductionPath(typeCode, year, number string) string {
	return fmt.Sprintf("/%s/%s/%s/introduction/data.xml", typeCode, year, number)
}

func MadeIntroductionPath(typeCode, year, number string) string {
	return fmt.Sprintf("/%s/%s/%s/made/introduction/data.xml", typeCode, year, number)
}

func ContentsPath(typeCode, year, number string) string {
	return fmt.Sprintf("/%s/%s/%s/contents/data.xml", typeCode, year, number)
}

func ContentsFallbackPath(typeCode, year, number string) string {
	return fmt.Sprintf("/%s/%s/%s/data.xml", typeCode, year, number)
}

func BodyPath(typeCode, year, number string) string {
	return fmt.Sprintf("/%s/%s/%s/body/data.xml", typeCode, year, number)
}

func ResourcesPath(typeCode, year, number string) string {
	return fmt.Sprintf("/%s/%s/%s/resources/data.xml", typeCode, year, number)
}

func AffectingChangesPath(typeCode, year, number string) string {
	return fmt.Sprintf("/changes/affecting/%s/%s/%s?results-count=1000&sort=affecting-year-number", typeCode, year, number)
}

func AffectedChangesPath(typeCode, year, number string) string {
	return fmt.Sprintf("/changes/affected/%s/%s/%s?results-count=1000&sort=affected-year-number", typeCode, year, number)
}

func MadeEnactedByPath(typeCode, year, number string) string {
	return fmt.Sprintf("/%s/%s/%s/made/data.xml", typeCode, year, number)
}
