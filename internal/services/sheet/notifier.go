package sheet

//go:generate mockgen -destination=mock/mock_notifier.go -package=mocksheet -source=notifier.go

import (
	"context"

	"github.com/sirupsen/logrus"
)

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Messages shown to the user.
const (
	MessageLoadFailed = "Something went wrong!"
	MessageSaved      = "Successfully saved the Characters"
	MessageSaveFailed = "An error occurred while saving the Characters"
)

// Notice is a message the user has to see.
type Notice struct {
	Level   NoticeLevel
	Message string
	Err     error
}

// Notifier surfaces notices to the user.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// LogNotifier writes notices to the log. It is the fallback when no user
// facing channel is configured.
type LogNotifier struct {
	Log logrus.FieldLogger
}

func (n *LogNotifier) Notify(_ context.Context, notice Notice) {
	log := n.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	entry := log.WithField("notice", notice.Message)
	if notice.Err != nil {
		entry = entry.WithError(notice.Err)
	}

	if notice.Level == NoticeError {
		entry.Warn("User notice")
		return
	}
	entry.Info("User notice")
}

// Notifiers fans a notice out to several notifiers.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, notice Notice) {
	for _, n := range ns {
		if n != nil {
			n.Notify(ctx, notice)
		}
	}
}
