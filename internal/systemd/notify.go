// Package systemd reports daemon state to the service manager.
package systemd

import (
	"log/slog"

	"github.com/coreos/go-systemd/v22/daemon"
)

// Notifier sends sd_notify messages. Outside of a Type=notify unit every
// call is a no-op.
type Notifier struct {
	logger *slog.Logger
	send   func(state string) (bool, error)
}

// NewNotifier returns a Notifier that writes to $NOTIFY_SOCKET.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{
		logger: logger,
		send: func(state string) (bool, error) {
			return daemon.SdNotify(false, state)
		},
	}
}

// Ready tells systemd that startup finished.
func (n *Notifier) Ready() { n.notify(daemon.SdNotifyReady) }

// Reloading tells systemd a configuration reload is in progress.
func (n *Notifier) Reloading() { n.notify(daemon.SdNotifyReloading) }

// Stopping tells systemd the daemon is shutting down.
func (n *Notifier) Stopping() { n.notify(daemon.SdNotifyStopping) }

// Status sets the free-form status line shown by systemctl status.
func (n *Notifier) Status(msg string) { n.notify("STATUS=" + msg) }

func (n *Notifier) notify(state string) {
	sent, err := n.send(state)
	switch {
	case err != nil:
		n.logger.Warn("sd_notify failed", "state", state, "error", err)
	case !sent:
		n.logger.Debug("sd_notify not supported, skipping", "state", state)
	}
}
