package rulebook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
)

// SkillDefinition pairs a skill with the attribute that governs it.
type SkillDefinition struct {
	Name      string `json:"name"`
	Attribute string `json:"attributeModifier"`
}

// Key returns the proficiency key used by the 5e SRD, e.g. "skill-sleight-of-hand".
func (d SkillDefinition) Key() string {
	return "skill-" + strings.ReplaceAll(strings.ToLower(d.Name), " ", "-")
}

// Catalog holds the fixed enumerations a sheet is built from. It is
// injected at startup and never changed afterwards.
type Catalog struct {
	Attributes []string          `json:"attributes"`
	Skills     []SkillDefinition `json:"skills"`
}

// DefaultCatalog returns the six abilities and eighteen skills of 5e.
func DefaultCatalog() *Catalog {
	attrs := make([]string, len(shared.Attributes))
	for i, a := range shared.Attributes {
		attrs[i] = a.String()
	}

	return &Catalog{
		Attributes: attrs,
		Skills: []SkillDefinition{
			{Name: "Acrobatics", Attribute: shared.AttributeDexterity.String()},
			{Name: "Animal Handling", Attribute: shared.AttributeWisdom.String()},
			{Name: "Arcana", Attribute: shared.AttributeIntelligence.String()},
			{Name: "Athletics", Attribute: shared.AttributeStrength.String()},
			{Name: "Deception", Attribute: shared.AttributeCharisma.String()},
			{Name: "History", Attribute: shared.AttributeIntelligence.String()},
			{Name: "Insight", Attribute: shared.AttributeWisdom.String()},
			{Name: "Intimidation", Attribute: shared.AttributeCharisma.String()},
			{Name: "Investigation", Attribute: shared.AttributeIntelligence.String()},
			{Name: "Medicine", Attribute: shared.AttributeWisdom.String()},
			{Name: "Nature", Attribute: shared.AttributeIntelligence.String()},
			{Name: "Perception", Attribute: shared.AttributeWisdom.String()},
			{Name: "Performance", Attribute: shared.AttributeCharisma.String()},
			{Name: "Persuasion", Attribute: shared.AttributeCharisma.String()},
			{Name: "Religion", Attribute: shared.AttributeIntelligence.String()},
			{Name: "Sleight of Hand", Attribute: shared.AttributeDexterity.String()},
			{Name: "Stealth", Attribute: shared.AttributeDexterity.String()},
			{Name: "Survival", Attribute: shared.AttributeWisdom.String()},
		},
	}
}

// LoadCatalog decodes a catalog from JSON and validates it.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var cat Catalog
	if err := json.NewDecoder(r).Decode(&cat); err != nil {
		return nil, dnderr.Wrap(err, "failed to decode catalog")
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}

	return &cat, nil
}

// Validate checks that names are unique and every skill points at a
// known attribute.
func (c *Catalog) Validate() error {
	if c == nil {
		return dnderr.Validationf("catalog is required")
	}
	if len(c.Attributes) == 0 {
		return dnderr.Validationf("catalog has no attributes")
	}

	attrs := make(map[string]bool, len(c.Attributes))
	for _, name := range c.Attributes {
		if name == "" {
			return dnderr.Validationf("catalog attribute name is empty")
		}
		if attrs[name] {
			return dnderr.Validationf("duplicate attribute %q", name).WithMeta("attribute", name)
		}
		attrs[name] = true
	}

	skills := make(map[string]bool, len(c.Skills))
	for _, skill := range c.Skills {
		if skill.Name == "" {
			return dnderr.Validationf("catalog skill name is empty")
		}
		if skills[skill.Name] {
			return dnderr.Validationf("duplicate skill %q", skill.Name).WithMeta("skill", skill.Name)
		}
		if !attrs[skill.Attribute] {
			return dnderr.Validationf("skill %q uses unknown attribute %q", skill.Name, skill.Attribute).
				WithMeta("skill", skill.Name)
		}
		skills[skill.Name] = true
	}

	return nil
}

// Skill looks a skill up by name.
func (c *Catalog) Skill(name string) (SkillDefinition, bool) {
	for _, skill := range c.Skills {
		if strings.EqualFold(skill.Name, name) {
			return skill, true
		}
	}
	return SkillDefinition{}, false
}

// Attribute looks an attribute up by name and returns its catalog spelling.
func (c *Catalog) Attribute(name string) (string, bool) {
	for _, a := range c.Attributes {
		if strings.EqualFold(a, name) {
			return a, true
		}
	}
	return "", false
}

func (c *Catalog) String() string {
	return fmt.Sprintf("%d attributes, %d skills", len(c.Attributes), len(c.Skills))
}
