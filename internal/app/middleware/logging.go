package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/commands"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/queries"
)

// CommandLogging logs every dispatched command with its outcome and timing.
func CommandLogging(logger *slog.Logger) CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			if logger == nil {
				return nextFn(ctx, cmd)
			}
			started := time.Now()
			result, err := nextFn(ctx, cmd)
			if err != nil {
				logger.Warn("command failed", "command", cmd.Key(), "duration", time.Since(started), "error", err)
				return result, err
			}
			logger.Debug("command handled", "command", cmd.Key(), "duration", time.Since(started))
			return result, nil
		})
	}
}

// QueryLogging logs slow or failing queries.
func QueryLogging(logger *slog.Logger, slow time.Duration) QueryMiddleware {
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			if logger == nil {
				return nextFn(ctx, q)
			}
			started := time.Now()
			result, err := nextFn(ctx, q)
			elapsed := time.Since(started)
			switch {
			case err != nil:
				logger.Warn("query failed", "query", q.Key(), "duration", elapsed, "error", err)
			case slow > 0 && elapsed >= slow:
				logger.Info("slow query", "query", q.Key(), "duration", elapsed)
			}
			return result, err
		})
	}
}
