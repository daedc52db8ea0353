package notify

import (
	"context"
	"log/slog"

	"github.com/trebuchet-org/council/internal/domain/models"
)

// LogSubscriber writes every notification to the structured log
type LogSubscriber struct {
	logger *slog.Logger
}

// NewLogSubscriber creates a new LogSubscriber
func NewLogSubscriber(logger *slog.Logger) *LogSubscriber {
	return &LogSubscriber{logger: logger}
}

// Deliver logs the notification at info level
func (s *LogSubscriber) Deliver(ctx context.Context, note models.Notification) error {
	s.logger.InfoContext(ctx, "notification",
		"type", note.NotificationType(),
		"motion", note.Motion(),
		"detail", note.String(),
	)
	return nil
}
