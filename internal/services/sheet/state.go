package sheet

import (
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
	"github.com/KirkDiggler/dnd-character-sheet/internal/services/skillcheck"
)

// State is an immutable snapshot of the editor: the collection, the
// selected character and the last skill check. Every change returns a new
// State and leaves the receiver as it was.
type State struct {
	characters []*character.Character
	selected   int
	lastCheck  *skillcheck.Result
}

// NewState creates a state holding a copy of chars.
func NewState(chars []*character.Character) *State {
	copied := character.CloneAll(chars)
	if copied == nil {
		copied = []*character.Character{}
	}
	return &State{characters: copied}
}

// Len returns the number of characters.
func (s *State) Len() int {
	return len(s.characters)
}

// Characters returns a copy of the collection in order.
func (s *State) Characters() []*character.Character {
	return character.CloneAll(s.characters)
}

// Character returns a copy of the character at index.
func (s *State) Character(index int) (*character.Character, error) {
	if err := s.checkIndex(index); err != nil {
		return nil, err
	}
	return s.characters[index].Clone(), nil
}

// DisplayName resolves the name of the character at index. Positions past
// the end get the placeholder name.
func (s *State) DisplayName(index int) string {
	if index < 0 || index >= len(s.characters) {
		var none *character.Character
		return none.DisplayName(index)
	}
	return s.characters[index].DisplayName(index)
}

// Selected returns the index of the selected character.
func (s *State) Selected() int {
	return s.selected
}

// LastCheck returns the most recent skill check, or nil.
func (s *State) LastCheck() *skillcheck.Result {
	if s.lastCheck == nil {
		return nil
	}
	result := *s.lastCheck
	return &result
}

// WithCharacters replaces the whole collection. The selection goes back to
// the first character and the last check is dropped, since both referred
// to the old collection.
func (s *State) WithCharacters(chars []*character.Character) *State {
	return NewState(chars)
}

// Append adds char at the end. Existing entries are shared, not copied,
// since no State ever mutates a character in place.
func (s *State) Append(char *character.Character) *State {
	next := s.shallowCopy()
	next.characters = append(next.characters, char.Clone())
	return next
}

// Update merges patch into the character at index. An index outside the
// collection is rejected and the receiver is returned unchanged.
func (s *State) Update(index int, patch *character.Patch) (*State, error) {
	if err := s.checkIndex(index); err != nil {
		return s, err
	}

	next := s.shallowCopy()
	next.characters[index] = s.characters[index].Apply(patch)
	return next, nil
}

// Select changes the selected character.
func (s *State) Select(index int) (*State, error) {
	if err := s.checkIndex(index); err != nil {
		return s, err
	}

	next := s.shallowCopy()
	next.selected = index
	return next, nil
}

// WithCheck records a skill check result.
func (s *State) WithCheck(result *skillcheck.Result) *State {
	next := s.shallowCopy()
	if result != nil {
		r := *result
		next.lastCheck = &r
	} else {
		next.lastCheck = nil
	}
	return next
}

func (s *State) shallowCopy() *State {
	chars := make([]*character.Character, len(s.characters), len(s.characters)+1)
	copy(chars, s.characters)

	return &State{
		characters: chars,
		selected:   s.selected,
		lastCheck:  s.lastCheck,
	}
}

func (s *State) checkIndex(index int) error {
	if index < 0 || index >= len(s.characters) {
		return dnderr.InvalidArgumentf("character index %d out of range (have %d)", index, len(s.characters)).
			WithMeta("index", index).
			WithMeta("count", len(s.characters))
	}
	return nil
}
