package discord

//go:generate mockgen -destination=mock/mock_message_sender.go -package=mockdiscord -source=notifier.go

import (
	"context"

	"github.com/KirkDiggler/dnd-character-sheet/internal/services/sheet"
	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

// MessageSender is the part of a discordgo session used to post notices
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ChannelNotifier posts store notices to a Discord channel
type ChannelNotifier struct {
	sender    MessageSender
	channelID string
	log       logrus.FieldLogger
}

func NewChannelNotifier(sender MessageSender, channelID string, log logrus.FieldLogger) *ChannelNotifier {
	if sender == nil {
		panic("message sender is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ChannelNotifier{sender: sender, channelID: channelID, log: log}
}

func (n *ChannelNotifier) Notify(_ context.Context, notice sheet.Notice) {
	content := "ℹ️ " + notice.Message
	if notice.Level == sheet.NoticeError {
		content = "⚠️ " + notice.Message
	}

	if _, err := n.sender.ChannelMessageSend(n.channelID, content); err != nil {
		n.log.WithError(err).WithField("channel_id", n.channelID).Warn("Failed to post notice")
	}
}
