package character_test

import (
	"encoding/json"
	"testing"

	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/rulebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNew_ZeroedFromCatalog(t *testing.T) {
	cat := rulebook.DefaultCatalog()

	char := character.New(cat)

	require.Len(t, char.Attributes, len(cat.Attributes))
	require.Len(t, char.Skills, len(cat.Skills))
	for i, attr := range char.Attributes {
		assert.Equal(t, cat.Attributes[i], attr.Name)
		assert.Zero(t, attr.Value)
	}
	for i, skill := range char.Skills {
		assert.Equal(t, cat.Skills[i].Name, skill.Name)
		assert.Equal(t, cat.Skills[i].Attribute, skill.AttributeModifier)
		assert.Zero(t, skill.Value)
	}
	assert.Empty(t, char.Name)
	assert.Zero(t, char.TotalSkill())
}

func TestNew_EveryNameExactlyOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[A-Z][a-z]{2,8}`), 1, 8, rapid.ID[string]).Draw(t, "attributes")
		skillNames := rapid.SliceOfNDistinct(rapid.StringMatching(`[A-Z][a-z]{2,8}`), 0, 20, rapid.ID[string]).Draw(t, "skills")

		cat := &rulebook.Catalog{Attributes: names}
		for _, s := range skillNames {
			governing := rapid.SampledFrom(names).Draw(t, "governing")
			cat.Skills = append(cat.Skills, rulebook.SkillDefinition{Name: s, Attribute: governing})
		}

		char := character.New(cat)

		seen := map[string]int{}
		for _, attr := range char.Attributes {
			if attr.Value != 0 {
				t.Fatalf("attribute %s not zero: %d", attr.Name, attr.Value)
			}
			seen[attr.Name]++
		}
		for _, name := range names {
			if seen[name] != 1 {
				t.Fatalf("attribute %s present %d times", name, seen[name])
			}
		}

		seenSkills := map[string]int{}
		for _, skill := range char.Skills {
			if skill.Value != 0 {
				t.Fatalf("skill %s not zero: %d", skill.Name, skill.Value)
			}
			seenSkills[skill.Name]++
		}
		for _, name := range skillNames {
			if seenSkills[name] != 1 {
				t.Fatalf("skill %s present %d times", name, seenSkills[name])
			}
		}
	})
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		position int
		want     string
	}{
		{
			name:     "name field wins",
			input:    `{"name": "Zorg", "attributes": [{"name": "name", "value": "Mira"}], "skills": []}`,
			position: 0,
			want:     "Zorg",
		},
		{
			name:     "legacy name attribute",
			input:    `{"attributes": [{"name": "Strength", "value": 3}, {"name": "name", "value": "Mira"}], "skills": []}`,
			position: 0,
			want:     "Mira",
		},
		{
			name:     "positional placeholder",
			input:    `{"attributes": [{"name": "Strength", "value": 3}], "skills": []}`,
			position: 2,
			want:     "Character #3",
		},
		{
			name:     "empty legacy name attribute shown as is",
			input:    `{"attributes": [{"name": "name", "value": ""}], "skills": []}`,
			position: 0,
			want:     "",
		},
		{
			name:     "numeric legacy name attribute keeps its digits",
			input:    `{"attributes": [{"name": "name", "value": 2.5}], "skills": []}`,
			position: 0,
			want:     "2.5",
		},
		{
			name:     "empty name field falls through",
			input:    `{"name": "", "attributes": [], "skills": []}`,
			position: 0,
			want:     "Character #1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var char character.Character
			require.NoError(t, json.Unmarshal([]byte(tt.input), &char))

			assert.Equal(t, tt.want, char.DisplayName(tt.position))
		})
	}
}

func TestDisplayName_NilCharacter(t *testing.T) {
	var char *character.Character
	assert.Equal(t, "Character #5", char.DisplayName(4))
}

func TestTotalSkill_SumsDuplicates(t *testing.T) {
	char := &character.Character{
		Skills: []character.Skill{
			{Name: "Stealth", Value: 2},
			{Name: "Stealth", Value: 3},
			{Name: "Arcana", Value: -1},
		},
	}

	assert.Equal(t, 4, char.TotalSkill())
}

func TestClone_IsDeep(t *testing.T) {
	char := character.New(rulebook.DefaultCatalog())
	char.Extra = map[string]json.RawMessage{"id": json.RawMessage(`"abc"`)}

	clone := char.Clone()
	clone.Attributes[0].Value = 10
	clone.Skills[0].Value = 4
	clone.Extra["id"][1] = 'x'

	assert.Zero(t, char.Attributes[0].Value)
	assert.Zero(t, char.Skills[0].Value)
	assert.Equal(t, `"abc"`, string(char.Extra["id"]))
}
