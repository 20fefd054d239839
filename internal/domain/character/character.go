package character

import (
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/rulebook"
)

// NameAttribute is the attribute name older records used to carry the
// character's name inside the attribute list.
const NameAttribute = "name"

// Attribute is a named base statistic.
type Attribute struct {
	Name  string
	Value int

	// Text carries a non-numeric value from legacy records, such as an
	// attribute named "name" holding the character's name.
	Text string

	// Raw is the value as loaded when it was not a plain integer. It is
	// written back as long as Value and Text still match it.
	Raw json.RawMessage

	// Extra holds fields of the attribute we do not model.
	Extra map[string]json.RawMessage
}

// Skill is a point-invested competency governed by an attribute.
type Skill struct {
	Name              string
	AttributeModifier string
	Value             int

	// Raw is the value as loaded when it was not a plain integer
	Raw json.RawMessage

	// Extra holds fields of the skill we do not model
	Extra map[string]json.RawMessage
}

// Character is one sheet in the collection. Its position in the
// collection is its only identity.
type Character struct {
	Name       string
	Attributes []Attribute
	Skills     []Skill

	// Extra holds top-level fields we do not model so they survive a
	// load/save round trip.
	Extra map[string]json.RawMessage
}

// New creates a character with every catalog attribute and skill at 0.
func New(cat *rulebook.Catalog) *Character {
	char := &Character{
		Attributes: make([]Attribute, len(cat.Attributes)),
		Skills:     make([]Skill, len(cat.Skills)),
	}

	for i, name := range cat.Attributes {
		char.Attributes[i] = Attribute{Name: name}
	}

	for i, skill := range cat.Skills {
		char.Skills[i] = Skill{
			Name:              skill.Name,
			AttributeModifier: skill.Attribute,
		}
	}

	return char
}

// TotalSkill sums the value of every skill entry. Entries sharing a name
// are all counted.
func (c *Character) TotalSkill() int {
	total := 0
	for _, skill := range c.Skills {
		total += skill.Value
	}
	return total
}

// DisplayName resolves the name shown for the character at position
// (0-based): the name field, then a legacy "name" attribute, then a
// positional placeholder.
func (c *Character) DisplayName(position int) string {
	if c != nil {
		if c.Name != "" {
			return c.Name
		}

		if attr, ok := c.Attribute(NameAttribute); ok {
			return attr.String()
		}
	}

	return fmt.Sprintf("Character #%d", position+1)
}

// Attribute returns the first attribute with the given name.
func (c *Character) Attribute(name string) (Attribute, bool) {
	for _, attr := range c.Attributes {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attribute{}, false
}

// Skill returns the first skill with the given name.
func (c *Character) Skill(name string) (Skill, bool) {
	for _, skill := range c.Skills {
		if skill.Name == name {
			return skill, true
		}
	}
	return Skill{}, false
}

// Clone returns a deep copy.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}

	clone := &Character{Name: c.Name}

	clone.Attributes = cloneAttributes(c.Attributes)
	clone.Skills = cloneSkills(c.Skills)
	clone.Extra = cloneExtra(c.Extra)

	return clone
}

func cloneAttributes(attrs []Attribute) []Attribute {
	if attrs == nil {
		return nil
	}

	out := make([]Attribute, len(attrs))
	for i, attr := range attrs {
		out[i] = attr
		out[i].Raw = cloneRaw(attr.Raw)
		out[i].Extra = cloneExtra(attr.Extra)
	}
	return out
}

func cloneSkills(skills []Skill) []Skill {
	if skills == nil {
		return nil
	}

	out := make([]Skill, len(skills))
	for i, skill := range skills {
		out[i] = skill
		out[i].Raw = cloneRaw(skill.Raw)
		out[i].Extra = cloneExtra(skill.Extra)
	}
	return out
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage{}, raw...)
}

func cloneExtra(extra map[string]json.RawMessage) map[string]json.RawMessage {
	if extra == nil {
		return nil
	}

	out := make(map[string]json.RawMessage, len(extra))
	for k, v := range extra {
		out[k] = cloneRaw(v)
	}
	return out
}

// CloneAll deep copies a collection, keeping order.
func CloneAll(chars []*Character) []*Character {
	if chars == nil {
		return nil
	}

	out := make([]*Character, len(chars))
	for i, char := range chars {
		out[i] = char.Clone()
	}
	return out
}
