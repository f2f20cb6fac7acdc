package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewSampler(t *testing.T) {
	tests := []struct {
		name, arg string
		want      string
	}{
		{"always_on", "", "AlwaysOnSampler"},
		{"always_off", "", "AlwaysOffSampler"},
		{"traceidratio", "0.5", "TraceIDRatioBased{0.5}"},
		{"traceidratio", "bogus", "AlwaysOnSampler"},
		{"parentbased_always_off", "", "ParentBased{root:AlwaysOffSampler"},
		{"parentbased_traceidratio", "0.25", "ParentBased{root:TraceIDRatioBased{0.25}"},
		{"unknown", "", "ParentBased{root:AlwaysOnSampler"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.arg, func(t *testing.T) {
			assert.Contains(t, newSampler(tt.name, tt.arg).Description(), tt.want)
		})
	}
}

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")
	core, logs := observer.New(zap.InfoLevel)

	shutdown, err := Init(context.Background(), zap.New(core))

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	entries := logs.FilterMessage("tracing_configured").All()
	require.Len(t, entries, 1)
	assert.Equal(t, false, entries[0].ContextMap()["tracing_enabled"])
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")
	core, logs := observer.New(zap.InfoLevel)

	shutdown, err := Init(context.Background(), zap.New(core))

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("tracing_init_failed").Len())
}
