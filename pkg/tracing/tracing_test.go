package tracing

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupRequiresEndpoint(t *testing.T) {
	_, err := Setup(context.Background(), Config{Enabled: true})
	require.Error(t, err)
}

func TestSetupEnabled(t *testing.T) {
	// the gRPC exporter dials lazily, so no collector is needed
	shutdown, err := Setup(context.Background(), Config{
		Enabled:     true,
		Endpoint:    "127.0.0.1:4317",
		Insecure:    true,
		SampleRate:  0.5,
		ServiceName: "comments-test",
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = shutdown(ctx)
}

func TestSampler(t *testing.T) {
	require.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	require.Equal(t, sdktrace.NeverSample().Description(), sampler(-1).Description())
	require.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	require.Equal(t, sdktrace.AlwaysSample().Description(), sampler(3).Description())
	require.Equal(t, sdktrace.AlwaysSample().Description(), sampler(math.NaN()).Description())
	require.Equal(t, sdktrace.TraceIDRatioBased(0.25).Description(), sampler(0.25).Description())
}

func TestSamplerZeroDropsRootSpans(t *testing.T) {
	res := sampler(0).ShouldSample(sdktrace.SamplingParameters{
		ParentContext: context.Background(),
		TraceID:       trace.TraceID{1},
		Name:          "root",
	})
	require.Equal(t, sdktrace.Drop, res.Decision)
}
