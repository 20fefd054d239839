package character

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

const (
	fieldName              = "name"
	fieldAttributes        = "attributes"
	fieldSkills            = "skills"
	fieldValue             = "value"
	fieldAttributeModifier = "attributeModifier"
)

// loadedValue is a decoded attribute or skill value. raw is set when the
// JSON was anything other than a plain integer, and is empty (not nil)
// when the value was absent.
type loadedValue struct {
	value  int
	text   string
	isText bool
	raw    json.RawMessage
}

func decodeValue(data json.RawMessage, present, allowText bool) (loadedValue, error) {
	if !present {
		return loadedValue{raw: json.RawMessage{}}, nil
	}

	trimmed := bytes.TrimSpace(data)
	raw := append(json.RawMessage(nil), trimmed...)

	if bytes.Equal(trimmed, []byte("null")) {
		return loadedValue{raw: raw}, nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		if !allowText {
			return loadedValue{}, fmt.Errorf("value must be a number, got %s", trimmed)
		}
		lv := loadedValue{isText: true, raw: raw}
		if err := json.Unmarshal(trimmed, &lv.text); err != nil {
			return loadedValue{}, err
		}
		return lv, nil
	}

	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return loadedValue{}, fmt.Errorf("value must be a number or string: %w", err)
	}

	if n, err := num.Int64(); err == nil {
		return loadedValue{value: int(n)}, nil
	}

	f, err := num.Float64()
	if err != nil {
		return loadedValue{}, fmt.Errorf("invalid number %s: %w", num, err)
	}
	return loadedValue{value: int(math.Trunc(f)), raw: raw}, nil
}

// encodeValue returns the JSON for a value and whether the field should be
// written at all. raw wins while value and text still match what it held.
func encodeValue(value int, text string, raw json.RawMessage) (json.RawMessage, bool, error) {
	if raw != nil {
		lv, err := decodeValue(raw, len(raw) > 0, true)
		if err == nil && lv.value == value && lv.text == text {
			return raw, len(raw) > 0, nil
		}
	}

	if text != "" {
		out, err := json.Marshal(text)
		return out, true, err
	}
	return json.RawMessage(strconv.Itoa(value)), true, nil
}

func splitFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("expected an object, got %s", bytes.TrimSpace(data))
	}
	return fields, nil
}

func takeString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", nil
	}
	delete(fields, key)

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return s, nil
}

func extraOrNil(fields map[string]json.RawMessage) map[string]json.RawMessage {
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func mergeExtra(extra map[string]json.RawMessage, size int) map[string]json.RawMessage {
	fields := make(map[string]json.RawMessage, len(extra)+size)
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}

// MarshalJSON writes the value as a number, or as a string for legacy
// text values. Values loaded in another shape are written back as loaded.
func (a Attribute) MarshalJSON() ([]byte, error) {
	fields := mergeExtra(a.Extra, 2)

	name, err := json.Marshal(a.Name)
	if err != nil {
		return nil, err
	}
	fields[fieldName] = name

	value, ok, err := encodeValue(a.Value, a.Text, a.Raw)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
	}
	if ok {
		fields[fieldValue] = value
	}

	return json.Marshal(fields)
}

// UnmarshalJSON accepts a numeric or string value.
func (a *Attribute) UnmarshalJSON(data []byte) error {
	fields, err := splitFields(data)
	if err != nil {
		return err
	}

	name, err := takeString(fields, fieldName)
	if err != nil {
		return err
	}

	rawValue, present := fields[fieldValue]
	delete(fields, fieldValue)

	lv, err := decodeValue(rawValue, present, true)
	if err != nil {
		return fmt.Errorf("attribute %q: %w", name, err)
	}

	*a = Attribute{
		Name:  name,
		Value: lv.value,
		Text:  lv.text,
		Raw:   lv.raw,
		Extra: extraOrNil(fields),
	}
	return nil
}

// MarshalJSON writes the skill with any fields it was loaded with.
func (s Skill) MarshalJSON() ([]byte, error) {
	fields := mergeExtra(s.Extra, 3)

	name, err := json.Marshal(s.Name)
	if err != nil {
		return nil, err
	}
	fields[fieldName] = name

	modifier, err := json.Marshal(s.AttributeModifier)
	if err != nil {
		return nil, err
	}
	fields[fieldAttributeModifier] = modifier

	value, ok, err := encodeValue(s.Value, "", s.Raw)
	if err != nil {
		return nil, fmt.Errorf("skill %q: %w", s.Name, err)
	}
	if ok {
		fields[fieldValue] = value
	}

	return json.Marshal(fields)
}

// UnmarshalJSON accepts a numeric value. Fractions count toward totals
// truncated.
func (s *Skill) UnmarshalJSON(data []byte) error {
	fields, err := splitFields(data)
	if err != nil {
		return err
	}

	name, err := takeString(fields, fieldName)
	if err != nil {
		return err
	}

	modifier, err := takeString(fields, fieldAttributeModifier)
	if err != nil {
		return fmt.Errorf("skill %q: %w", name, err)
	}

	rawValue, present := fields[fieldValue]
	delete(fields, fieldValue)

	lv, err := decodeValue(rawValue, present, false)
	if err != nil {
		return fmt.Errorf("skill %q: %w", name, err)
	}

	*s = Skill{
		Name:              name,
		AttributeModifier: modifier,
		Value:             lv.value,
		Raw:               lv.raw,
		Extra:             extraOrNil(fields),
	}
	return nil
}

// MarshalJSON writes the modelled fields together with any extra fields
// the character was loaded with.
func (c Character) MarshalJSON() ([]byte, error) {
	fields := mergeExtra(c.Extra, 3)

	if c.Name != "" {
		raw, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		fields[fieldName] = raw
	}

	if c.Attributes != nil {
		raw, err := json.Marshal(c.Attributes)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal attributes: %w", err)
		}
		fields[fieldAttributes] = raw
	}

	if c.Skills != nil {
		raw, err := json.Marshal(c.Skills)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal skills: %w", err)
		}
		fields[fieldSkills] = raw
	}

	return json.Marshal(fields)
}

// UnmarshalJSON decodes a character, keeping unknown fields in Extra. A
// modelled field loaded as null, or a name loaded as "", also stays in
// Extra until the field is given a value.
func (c *Character) UnmarshalJSON(data []byte) error {
	fields, err := splitFields(data)
	if err != nil {
		return err
	}

	*c = Character{}

	if raw, ok := fields[fieldName]; ok {
		if err := json.Unmarshal(raw, &c.Name); err != nil {
			return fmt.Errorf("failed to unmarshal name: %w", err)
		}
		if c.Name != "" {
			delete(fields, fieldName)
		}
	}

	if raw, ok := fields[fieldAttributes]; ok {
		if err := json.Unmarshal(raw, &c.Attributes); err != nil {
			return fmt.Errorf("failed to unmarshal attributes: %w", err)
		}
		if c.Attributes != nil {
			delete(fields, fieldAttributes)
		}
	}

	if raw, ok := fields[fieldSkills]; ok {
		if err := json.Unmarshal(raw, &c.Skills); err != nil {
			return fmt.Errorf("failed to unmarshal skills: %w", err)
		}
		if c.Skills != nil {
			delete(fields, fieldSkills)
		}
	}

	c.Extra = extraOrNil(fields)
	return nil
}

// String renders the attribute value the way it was stored: text as is, a
// loaded fraction in its original digits, a null or missing value as "".
func (a Attribute) String() string {
	if a.Raw != nil {
		lv, err := decodeValue(a.Raw, len(a.Raw) > 0, true)
		if err == nil && lv.value == a.Value && lv.text == a.Text {
			switch {
			case lv.isText:
				return a.Text
			case len(a.Raw) == 0 || bytes.Equal(a.Raw, []byte("null")):
				return ""
			default:
				return string(a.Raw)
			}
		}
	}

	if a.Text != "" {
		return a.Text
	}
	return strconv.Itoa(a.Value)
}
