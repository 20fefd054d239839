package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/rulebook"
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
	"github.com/KirkDiggler/dnd-character-sheet/internal/services/sheet"
)

// Value bounds accepted from users for attributes and skills
const (
	MinValue = 0
	MaxValue = 20
)

// Commands turns /sheet subcommands into store calls and response text.
// Positions are 1-based here and 0-based in the store.
type Commands struct {
	service sheet.Service
	catalog *rulebook.Catalog
}

func NewCommands(service sheet.Service, catalog *rulebook.Catalog) *Commands {
	if service == nil {
		panic("sheet service is required")
	}
	if catalog == nil {
		catalog = rulebook.DefaultCatalog()
	}
	return &Commands{service: service, catalog: catalog}
}

// List shows every character with its skill total
func (c *Commands) List() string {
	state := c.service.Snapshot()
	if state.Len() == 0 {
		return "📝 No characters yet. Use `/sheet add` to create one!"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📚 **Characters** (%d)\n", state.Len())
	for i, char := range state.Characters() {
		marker := "  "
		if i == state.Selected() {
			marker = "▶ "
		}
		fmt.Fprintf(&b, "%s%d. %s (skills %d)\n", marker, i+1, state.DisplayName(i), char.TotalSkill())
	}
	return b.String()
}

// Add appends a blank character
func (c *Commands) Add() string {
	state := c.service.Append()
	index := state.Len() - 1
	return fmt.Sprintf("✅ Added %s at position %d", state.DisplayName(index), index+1)
}

// Show renders one character
func (c *Commands) Show(position int) (string, error) {
	state := c.service.Snapshot()
	if err := checkPosition(state, position); err != nil {
		return "", err
	}
	char, err := state.Character(position - 1)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📜 **%s** (#%d)\n", state.DisplayName(position-1), position)

	b.WriteString("**Attributes**\n")
	for _, attr := range char.Attributes {
		if attr.Name == character.NameAttribute {
			continue
		}
		fmt.Fprintf(&b, "• %s: %s\n", attr.Name, attr.String())
	}

	fmt.Fprintf(&b, "**Skills** (total %d)\n", char.TotalSkill())
	for _, skill := range char.Skills {
		fmt.Fprintf(&b, "• %s (%s): %d\n", skill.Name, shortAttribute(skill.AttributeModifier), skill.Value)
	}

	return b.String(), nil
}

// Rename sets the character's name field
func (c *Commands) Rename(position int, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", dnderr.InvalidArgument("name cannot be empty")
	}
	if err := checkPosition(c.service.Snapshot(), position); err != nil {
		return "", err
	}

	state, err := c.service.Update(position-1, &character.Patch{Name: &name})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✏️ Character #%d is now %s", position, state.DisplayName(position-1)), nil
}

// SetAttribute changes one attribute value, clamped to MinValue..MaxValue
func (c *Commands) SetAttribute(position int, name string, value int) (string, error) {
	if err := checkPosition(c.service.Snapshot(), position); err != nil {
		return "", err
	}

	if canonical, ok := c.catalog.Attribute(name); ok {
		name = canonical
	}

	value = clamp(value)
	state, err := c.service.Edit(position-1, func(char *character.Character) (*character.Patch, error) {
		attrs, ok := char.WithAttributeValue(name, value)
		if !ok {
			return nil, dnderr.InvalidArgumentf("%s has no attribute %q", char.DisplayName(position-1), name)
		}
		return &character.Patch{Attributes: attrs}, nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ %s: %s set to %d", state.DisplayName(position-1), name, value), nil
}

// SetSkill changes one skill value, clamped to MinValue..MaxValue
func (c *Commands) SetSkill(position int, name string, value int) (string, error) {
	if err := checkPosition(c.service.Snapshot(), position); err != nil {
		return "", err
	}

	if def, ok := c.catalog.Skill(name); ok {
		name = def.Name
	}

	value = clamp(value)
	state, err := c.service.Edit(position-1, func(char *character.Character) (*character.Patch, error) {
		skills, ok := char.WithSkillValue(name, value)
		if !ok {
			return nil, dnderr.InvalidArgumentf("%s has no skill %q", char.DisplayName(position-1), name)
		}
		return &character.Patch{Skills: skills}, nil
	})
	if err != nil {
		return "", err
	}

	updated, err := state.Character(position - 1)
	if err != nil {
		return "", err
	}
	skill, _ := updated.Skill(name)
	return fmt.Sprintf("✅ %s: %s set to %d (skill total %d)", state.DisplayName(position-1), skill.Name, skill.Value, updated.TotalSkill()), nil
}

// Select picks the character skill checks roll for
func (c *Commands) Select(position int) (string, error) {
	if err := checkPosition(c.service.Snapshot(), position); err != nil {
		return "", err
	}
	state, err := c.service.Select(position - 1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🎯 Rolling for %s", state.DisplayName(position-1)), nil
}

// Roll runs a skill check for the selected character
func (c *Commands) Roll(dc int) (string, error) {
	state, result, err := c.service.SkillCheck(dc)
	if err != nil {
		return "", err
	}

	outcome := "❌ Failure"
	if result.Success {
		outcome = "✅ Success"
	}

	var flair string
	switch {
	case result.IsCrit:
		flair = " 🎉 Natural 20!"
	case result.IsFumble:
		flair = " 💀 Natural 1!"
	}

	return fmt.Sprintf("🎲 %s rolled %d + %d = **%d** vs DC %d: %s%s",
		state.DisplayName(result.CharacterIndex), result.Roll, result.Total, result.Score(), result.DifficultyClass, outcome, flair), nil
}

// Save sends the collection to the endpoint
func (c *Commands) Save(ctx context.Context) string {
	if err := c.service.Save(ctx); err != nil {
		return "❌ " + sheet.MessageSaveFailed
	}
	return "💾 " + sheet.MessageSaved
}

// Load replaces the collection with the endpoint's
func (c *Commands) Load(ctx context.Context) string {
	state, err := c.service.Load(ctx)
	if err != nil {
		return "❌ " + sheet.MessageLoadFailed
	}
	return fmt.Sprintf("📥 Loaded %d character(s)", state.Len())
}

func checkPosition(state *sheet.State, position int) error {
	if position < 1 || position > state.Len() {
		return dnderr.InvalidArgumentf("no character at position %d (have %d)", position, state.Len()).
			WithMeta("position", position)
	}
	return nil
}

func clamp(value int) int {
	if value < MinValue {
		return MinValue
	}
	if value > MaxValue {
		return MaxValue
	}
	return value
}

func shortAttribute(name string) string {
	return shared.Attribute(name).Short()
}
