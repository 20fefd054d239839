package character

// Patch is a partial update of a character. A nil field is left alone; a
// non-nil field replaces the character's field entirely.
type Patch struct {
	Name       *string
	Attributes []Attribute
	Skills     []Skill
}

// IsEmpty reports whether the patch changes nothing.
func (p *Patch) IsEmpty() bool {
	return p == nil || (p.Name == nil && p.Attributes == nil && p.Skills == nil)
}

// Apply returns a copy of c with the patch merged in. c is not modified.
func (c *Character) Apply(p *Patch) *Character {
	merged := c.Clone()
	if merged == nil {
		merged = &Character{}
	}
	if p.IsEmpty() {
		return merged
	}

	if p.Name != nil {
		merged.Name = *p.Name
	}

	if p.Attributes != nil {
		merged.Attributes = cloneAttributes(p.Attributes)
	}

	if p.Skills != nil {
		merged.Skills = cloneSkills(p.Skills)
	}

	return merged
}

// WithAttributeValue returns a copy of the attribute list with the named
// attribute set to value. It reports false when no attribute has that name.
func (c *Character) WithAttributeValue(name string, value int) ([]Attribute, bool) {
	out := cloneAttributes(c.Attributes)

	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			out[i].Text = ""
			out[i].Raw = nil
			return out, true
		}
	}

	return nil, false
}

// WithSkillValue returns a copy of the skill list with the named skill set
// to value. It reports false when no skill has that name.
func (c *Character) WithSkillValue(name string, value int) ([]Skill, bool) {
	out := cloneSkills(c.Skills)

	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			out[i].Raw = nil
			return out, true
		}
	}

	return nil, false
}
