// Package notify delivers user-facing notices as desktop notifications.
//
// Every notice is also written to the log, so the application stays usable
// when no notification daemon is present. Delivery failures are logged and
// otherwise ignored; a lost toast must never break command handling.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

const title = "Voxify"

// Notifier shows desktop notifications. The zero value is not usable; use
// [New].
type Notifier struct {
	log     *slog.Logger
	desktop bool
}

// New returns a notifier. When desktop is false only the log line is
// emitted, which is the mode used in tests and headless sessions.
func New(log *slog.Logger, desktop bool) *Notifier {
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{log: log, desktop: desktop}
}

// Say shows msg to the user.
func (n *Notifier) Say(msg string) {
	n.log.Info("notice", "message", msg)
	if !n.desktop {
		return
	}
	if err := beeep.Notify(title, msg, ""); err != nil {
		n.log.Warn("desktop notification failed", "error", err)
	}
}
