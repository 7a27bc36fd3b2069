package pipeline

import (
	"context"
	"log/slog"

	"github.com/primex/opportunity-dashboard/internal/domain"
)

// logNotifier turns user-facing notices into log records for headless runs.
type logNotifier struct {
	logger *slog.Logger
}

func (n logNotifier) Notify(notice domain.Notice) {
	n.logger.Log(context.Background(), noticeLevel(notice.Level), notice.Message)
}

func noticeLevel(level domain.NoticeLevel) slog.Level {
	switch level {
	case domain.NoticeWarning:
		return slog.LevelWarn
	case domain.NoticeError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
