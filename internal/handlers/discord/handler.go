package discord

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/rulebook"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
	"github.com/KirkDiggler/dnd-character-sheet/internal/services/sheet"
	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

// CommandName is the slash command every subcommand hangs off
const CommandName = "sheet"

// Handler handles all Discord interactions
type Handler struct {
	commands       *Commands
	catalog        *rulebook.Catalog
	log            logrus.FieldLogger
	requestTimeout time.Duration
}

type HandlerConfig struct {
	Service        sheet.Service     // Required
	Catalog        *rulebook.Catalog // Optional, defaults to the 5e catalog
	Logger         logrus.FieldLogger
	RequestTimeout time.Duration // Optional, bounds load and save
}

func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil {
		panic("handler config is required")
	}

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = rulebook.DefaultCatalog()
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Handler{
		commands:       NewCommands(cfg.Service, catalog),
		catalog:        catalog,
		log:            log.WithField("component", "discord"),
		requestTimeout: timeout,
	}
}

func positionOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "position",
		Description: description,
		Required:    true,
		MinValue:    floatPtr(1),
	}
}

func valueOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "value",
		Description: description,
		Required:    true,
		MinValue:    floatPtr(MinValue),
		MaxValue:    MaxValue,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// Command builds the /sheet command definition from the catalog
func (h *Handler) Command() *discordgo.ApplicationCommand {
	attributeChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(h.catalog.Attributes))
	for _, attr := range h.catalog.Attributes {
		attributeChoices = append(attributeChoices, &discordgo.ApplicationCommandOptionChoice{Name: attr, Value: attr})
	}

	// Discord caps choices at 25
	skillChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(h.catalog.Skills))
	for i, skill := range h.catalog.Skills {
		if i == 25 {
			break
		}
		skillChoices = append(skillChoices, &discordgo.ApplicationCommandOptionChoice{Name: skill.Name, Value: skill.Name})
	}

	return &discordgo.ApplicationCommand{
		Name:        CommandName,
		Description: "Edit the shared character sheets",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "list",
				Description: "List all characters",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "add",
				Description: "Add a blank character",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "show",
				Description: "Show a character's attributes and skills",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options:     []*discordgo.ApplicationCommandOption{positionOption("Character position from /sheet list")},
			},
			{
				Name:        "rename",
				Description: "Rename a character",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					positionOption("Character position from /sheet list"),
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "New name",
						Required:    true,
					},
				},
			},
			{
				Name:        "set-attribute",
				Description: "Set an attribute value",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					positionOption("Character position from /sheet list"),
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "attribute",
						Description: "Attribute to change",
						Required:    true,
						Choices:     attributeChoices,
					},
					valueOption("New value (0-20)"),
				},
			},
			{
				Name:        "set-skill",
				Description: "Set a skill value",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					positionOption("Character position from /sheet list"),
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "skill",
						Description: "Skill to change",
						Required:    true,
						Choices:     skillChoices,
					},
					valueOption("New value (0-20)"),
				},
			},
			{
				Name:        "select",
				Description: "Choose the character skill checks roll for",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options:     []*discordgo.ApplicationCommandOption{positionOption("Character position from /sheet list")},
			},
			{
				Name:        "roll",
				Description: "Roll a skill check for the selected character",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "dc",
						Description: "Difficulty class",
						Required:    true,
					},
				},
			},
			{
				Name:        "save",
				Description: "Save all characters",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "load",
				Description: "Reload characters, discarding unsaved changes",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
		},
	}
}

// RegisterCommands registers the /sheet command
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	cmd, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, h.Command())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", CommandName, err)
	}

	h.log.WithField("command", cmd.Name).Info("Registered command")
	return nil
}

// HandleInteraction handles all Discord interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			h.log.WithField("panic", r).WithField("stack", string(debug.Stack())).Error("Panic in interaction handler")
			h.respond(s, i, fmt.Sprintf("❌ An unexpected error occurred: %v", r))
		}
	}()

	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	if data.Name != CommandName || len(data.Options) == 0 {
		return
	}

	sub := data.Options[0]
	log := h.log.WithField("subcommand", sub.Name)

	if sub.Name == "save" || sub.Name == "load" {
		h.deferred(s, i, log, sub)
		return
	}

	content, err := h.Dispatch(context.Background(), sub.Name, sub.Options)
	if err != nil {
		if dnderr.IsInvalidArgument(err) {
			log.WithError(err).Debug("Command rejected")
		} else {
			log.WithError(err).Warn("Command failed")
		}
		content = errorMessage(err)
	}

	h.respond(s, i, content)
}

// deferred acknowledges first, since load and save wait on the endpoint
func (h *Handler) deferred(s *discordgo.Session, i *discordgo.InteractionCreate, log logrus.FieldLogger, sub *discordgo.ApplicationCommandInteractionDataOption) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.WithError(err).Error("Failed to acknowledge interaction")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.requestTimeout)
	defer cancel()

	content, err := h.Dispatch(ctx, sub.Name, sub.Options)
	if err != nil {
		content = errorMessage(err)
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
		log.WithError(err).Error("Failed to edit interaction response")
	}
}

// Dispatch runs a subcommand and returns the response text
func (h *Handler) Dispatch(ctx context.Context, name string, options []*discordgo.ApplicationCommandInteractionDataOption) (string, error) {
	switch name {
	case "list":
		return h.commands.List(), nil
	case "add":
		return h.commands.Add(), nil
	case "show":
		return h.commands.Show(intOption(options, "position"))
	case "rename":
		return h.commands.Rename(intOption(options, "position"), stringOption(options, "name"))
	case "set-attribute":
		return h.commands.SetAttribute(intOption(options, "position"), stringOption(options, "attribute"), intOption(options, "value"))
	case "set-skill":
		return h.commands.SetSkill(intOption(options, "position"), stringOption(options, "skill"), intOption(options, "value"))
	case "select":
		return h.commands.Select(intOption(options, "position"))
	case "roll":
		return h.commands.Roll(intOption(options, "dc"))
	case "save":
		return h.commands.Save(ctx), nil
	case "load":
		return h.commands.Load(ctx), nil
	default:
		return "", dnderr.InvalidArgumentf("unknown subcommand %q", name)
	}
}

func (h *Handler) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		h.log.WithError(err).Error("Failed to respond to interaction")
	}
}

// MessageCommandFailed is shown for errors that are not the user's input
const MessageCommandFailed = "That command could not be completed, please try again."

// errorMessage shows the innermost message of a rejected command and hides
// everything else
func errorMessage(err error) string {
	if !dnderr.IsInvalidArgument(err) {
		return "❌ " + MessageCommandFailed
	}

	msg := err.Error()
	var appErr *dnderr.Error
	for errors.As(err, &appErr) {
		msg = appErr.Message
		if appErr.Cause == nil {
			break
		}
		err = appErr.Cause
	}
	return "❌ " + msg
}
