// Package notify delivers user-facing notifications produced by menu and
// dashboard operations.
package notify

import (
	"context"
	"errors"
	"fmt"

	"franchise-ops/internal/common/logger"
	"franchise-ops/internal/common/metrics"
	"franchise-ops/internal/models"
)

// Notifier delivers one notification. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// LogNotifier writes notifications to the structured log. It never fails.
type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log.WithFields(map[string]interface{}{"channel": "log"})}
}

func (l *LogNotifier) Notify(_ context.Context, n models.Notification) error {
	fields := map[string]interface{}{
		"notificationId": n.ID,
		"level":          string(n.Level),
		"title":          n.Title,
		"menuItemId":     n.MenuItemID,
		"sessionId":      n.SessionID,
	}
	switch n.Level {
	case models.NotificationCritical, models.NotificationError:
		l.logger.Error(n.Message, fields)
	default:
		l.logger.Info(n.Message, fields)
	}
	metrics.NotificationsSent.WithLabelValues("log", string(n.Level)).Inc()
	return nil
}

// Fanout delivers to every channel, even when an earlier one fails, and
// returns the joined errors.
type Fanout struct {
	channels []Notifier
}

func NewFanout(channels ...Notifier) *Fanout {
	out := make([]Notifier, 0, len(channels))
	for _, c := range channels {
		if c != nil {
			out = append(out, c)
		}
	}
	return &Fanout{channels: out}
}

func (f *Fanout) Notify(ctx context.Context, n models.Notification) error {
	var errs []error
	for i, c := range f.channels {
		if err := c.Notify(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("channel %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Len reports the number of configured channels.
func (f *Fanout) Len() int {
	return len(f.channels)
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(context.Context, models.Notification) error { return nil }
