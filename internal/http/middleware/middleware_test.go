package middleware

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})

	t.Run("should replace unsafe request id", func(t *testing.T) {
		for _, bad := range []string{"has space", "line\tbreak", strings.Repeat("a", 129)} {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set(RequestIDHeader, bad)

			resp, _ := app.Test(req)

			got := resp.Header.Get(RequestIDHeader)
			assert.NotEqual(t, bad, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err, bad)
		}
	})
}

func TestRequestIDFromCtx(t *testing.T) {
	app := fiber.New()
	app.Get("/bare", func(c *fiber.Ctx) error {
		return c.SendString("[" + RequestIDFromCtx(c) + "]")
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/bare", nil))

	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	assert.Equal(t, "[]", buf.String())
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	app := fiber.New()

	app.Use(RequestID())
	app.Use(Logger(zap.New(core)))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "down")
	})

	t.Run("success entry", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test?month=March", nil)
		req.Header.Set(RequestIDHeader, "rid-1")
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "http_request", entries[0].Message)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

		fields := entries[0].ContextMap()
		assert.Equal(t, "rid-1", fields["request_id"])
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "/test", fields["path"])
		assert.EqualValues(t, fiber.StatusAccepted, fields["status"])
		assert.Contains(t, fields, "latency_ms")
	})

	t.Run("handler error uses its status", func(t *testing.T) {
		app.Test(httptest.NewRequest("GET", "/boom", nil))

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.EqualValues(t, fiber.StatusServiceUnavailable, entries[0].ContextMap()["status"])
	})

	t.Run("not found is a warning", func(t *testing.T) {
		app.Test(httptest.NewRequest("GET", "/missing", nil))

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.EqualValues(t, fiber.StatusNotFound, entries[0].ContextMap()["status"])
	})
}
