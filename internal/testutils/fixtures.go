package testutils

import (
	"encoding/json"

	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/rulebook"
)

// CreateTestCharacter creates a catalog-complete character with the given
// name and every value at 0
func CreateTestCharacter(name string) *character.Character {
	char := character.New(rulebook.DefaultCatalog())
	char.Name = name
	return char
}

// CreateLegacyCharacter creates a character whose name lives in an
// attribute called "name", the way older records stored it
func CreateLegacyCharacter(name string) *character.Character {
	raw, _ := json.Marshal(name)

	char := character.New(rulebook.DefaultCatalog())
	char.Attributes = append(char.Attributes, character.Attribute{
		Name: character.NameAttribute,
		Text: name,
		Raw:  raw,
	})
	return char
}

// CreateTestCollection creates a small mixed collection
func CreateTestCollection() []*character.Character {
	zorg := CreateTestCharacter("Zorg")
	zorg.Attributes[0].Value = 16
	zorg.Skills, _ = zorg.WithSkillValue("Athletics", 3)

	mira := CreateLegacyCharacter("Mira")
	mira.Skills, _ = mira.WithSkillValue("Stealth", 5)

	return []*character.Character{zorg, mira, CreateTestCharacter("")}
}
