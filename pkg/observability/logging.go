package observability

import (
	"log/slog"

	"github.com/aretw0/mockcoach/pkg/domain"
)

// LogHooks returns lifecycle hooks that log every callback and window transition at Info.
// The engine itself only logs failures and window transitions at Debug; these hooks are for
// audit-style output such as the CLI's verbose mode.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCallbackFinish: func(e *domain.CallbackEvent) {
			attrs := []any{"track", e.Track, "op", e.Op, "position", e.Position, "duration", e.Duration}
			if e.Err != nil {
				attrs = append(attrs, "error", e.Err)
			}
			logger.Info("callback", attrs...)
		},
		OnWindowOpen: func(e *domain.WindowEvent) {
			logger.Info("window_open", "track", e.Track, "op", e.Op, "last_index", e.LastIndex, "inclusive", e.Inclusive)
		},
		OnWindowClose: func(e *domain.WindowEvent) {
			logger.Info("window_close", "track", e.Track, "op", e.Op)
		},
	}
}
