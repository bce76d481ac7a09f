package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

func TestCategorize_ThreeWaySplit(t *testing.T) {
	raw := []legalrecord.RawRecord{
		{TitleEN: "The Health and Safety (Display Screen Equipment) Regulations 1992", SICode: []string{"HEALTH AND SAFETY"}},
		{TitleEN: "Employment Rights (Flexible Working) Regulations 2023"},
		{TitleEN: "Railway Station Closure Order 2020"},
		{TitleEN: "Some Unrelated Instrument 2021"},
	}

	got := Categorize(raw)

	assert.Len(t, got.Group1, 1)
	assert.Equal(t, "💙 OH&S: Occupational / Personal Safety", got.Group1[0].Family)

	assert.Len(t, got.Group2, 1)
	assert.Equal(t, "🧡 EMPLOYMENT", got.Group2[0].Family)

	assert.Len(t, got.Group3, 2)
	_, ok1 := got.Group3["1"]
	_, ok2 := got.Group3["2"]
	assert.True(t, ok1, "group3 keys should start at \"1\"")
	assert.True(t, ok2)
	_, ok0 := got.Group3["0"]
	assert.False(t, ok0, "group3 should not use a zero-based ordinal key")
}

func TestCategorize_TitleExclusionTakesPriority(t *testing.T) {
	raw := []legalrecord.RawRecord{
		{TitleEN: "Drought Order (Health and Safety notice) 1999", SICode: []string{"HEALTH AND SAFETY"}},
	}

	got := Categorize(raw)

	assert.Empty(t, got.Group1)
	assert.Empty(t, got.Group2)
	assert.Len(t, got.Group3, 1)
	assert.Equal(t, raw[0], got.Group3["1"])
}

func TestCategorize_EmptyInput(t *testing.T) {
	got := Categorize(nil)

	assert.Empty(t, got.Group1)
	assert.Empty(t, got.Group2)
	assert.Empty(t, got.Group3)
}

func TestCategorize_SICodeMembershipPreferredOverTermsForWithSIRecords(t *testing.T) {
	raw := []legalrecord.RawRecord{
		{TitleEN: "Air Quality Standards Regulations 2010", SICode: []string{"UNKNOWN CODE"}},
	}

	got := Categorize(raw)

	// SI code present but unmatched → falls through to terms matching, not excluded outright.
	assert.Empty(t, got.Group1)
	assert.Len(t, got.Group2, 1)
	assert.Equal(t, "💚 AIR QUALITY", got.Group2[0].Family)
}
