package discord

import "github.com/bwmarrin/discordgo"

// commandOption finds an option by name, drilling through subcommand
// groups and subcommands
func commandOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for len(options) > 0 {
		for _, opt := range options {
			if opt.Name == name {
				return opt
			}
		}

		if len(options[0].Options) == 0 {
			break
		}
		options = options[0].Options
	}

	return nil
}

func stringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	opt := commandOption(options, name)
	if opt == nil {
		return ""
	}
	return opt.StringValue()
}

func intOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	opt := commandOption(options, name)
	if opt == nil {
		return 0
	}
	return int(opt.IntValue())
}
