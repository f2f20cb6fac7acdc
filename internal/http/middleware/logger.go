package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a middleware that writes one structured access log entry per request.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency_ms
//
// 5xx responses are logged at error level, 4xx at warn, everything else at info.
func Logger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The global error handler has not run yet, so derive the final status here.
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		fields := []zap.Field{
			zap.String("request_id", RequestIDFromCtx(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Float64("latency_ms", float64(time.Since(start).Microseconds())/1000),
		}

		if ce := log.Check(levelFor(status), "http_request"); ce != nil {
			ce.Write(fields...)
		}
		return err
	}
}

func levelFor(status int) zapcore.Level {
	switch {
	case status >= fiber.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= fiber.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
