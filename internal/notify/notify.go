package notify

import "go.uber.org/zap"

// Notifier delivers a user-visible notification. Fire-and-forget, the
// core never depends on a result.
type Notifier interface {
	Notify(title, message string)
}

// LogNotifier writes notifications to the log, the CLI stand-in for a
// platform push notification.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates new LogNotifier instance
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(title, message string) {
	n.logger.Info("notification", zap.String("title", title), zap.String("message", message))
}
