package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e . Client

import (
	"context"
)

// Proficiency is the part of a D&D 5e API proficiency the catalog check
// needs
type Proficiency struct {
	Key     string
	Name    string
	IsSkill bool
}

type Client interface {
	GetProficiency(ctx context.Context, key string) (*Proficiency, error)
}
