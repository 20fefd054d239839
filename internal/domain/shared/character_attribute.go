package shared

import "strings"

// Attribute is the name of a base statistic as it appears on the sheet.
type Attribute string

var Attributes = []Attribute{AttributeStrength, AttributeDexterity, AttributeConstitution, AttributeIntelligence, AttributeWisdom, AttributeCharisma}

const (
	AttributeNone         Attribute = ""
	AttributeStrength     Attribute = "Strength"
	AttributeDexterity    Attribute = "Dexterity"
	AttributeConstitution Attribute = "Constitution"
	AttributeIntelligence Attribute = "Intelligence"
	AttributeWisdom       Attribute = "Wisdom"
	AttributeCharisma     Attribute = "Charisma"
)

// Short returns the three letter abbreviation, e.g. "DEX".
func (a Attribute) Short() string {
	if len(a) < 3 {
		return strings.ToUpper(string(a))
	}
	return strings.ToUpper(string(a[:3]))
}

func (a Attribute) String() string {
	return string(a)
}
