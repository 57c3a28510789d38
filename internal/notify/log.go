package notify

import (
	"context"
	"log/slog"

	"realty/pkg/requestcontext"
)

// LogNotifier writes notifications to a structured logger. Destructive
// toasts are logged at warn level.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, t Toast) {
	level := slog.LevelInfo
	if t.IsDestructive() {
		level = slog.LevelWarn
	}
	n.logger.Log(ctx, level, "notification",
		"title", t.Title,
		"description", t.Description,
		"variant", t.Variant,
		"request_id", requestcontext.RequestID(ctx),
	)
}
