package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/vxml/internal/errors"
	"github.com/vango-dev/vxml/pkg/vdom"
)

// Logging creates middleware that logs each render. Successful renders are
// logged at debug level, failures at warn. A nil logger uses slog.Default.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next RenderFunc) RenderFunc {
		return func(ctx context.Context, node *vdom.Node) (string, error) {
			start := time.Now()
			out, err := next(ctx, node)
			elapsed := time.Since(start)

			if err != nil {
				logger.WarnContext(ctx, "render failed",
					"root", rootTag(node),
					"code", errors.CodeOf(err),
					"error", err,
					"duration", elapsed,
				)
				return out, err
			}

			logger.DebugContext(ctx, "render complete",
				"root", rootTag(node),
				"bytes", len(out),
				"duration", elapsed,
			)
			return out, nil
		}
	}
}
