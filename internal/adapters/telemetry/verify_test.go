package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/polyfill/internal/adapters/telemetry"
	"go.trai.ch/polyfill/internal/core/ports"
	"go.trai.ch/polyfill/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
}

func TestOTelTracer_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := telemetry.NewProvider(recorder)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	tracer := telemetry.NewOTelTracerFromProvider(provider, "test-tracer")

	ctx, parent := tracer.Start(context.Background(), "bundle")
	parent.SetAttribute("identity", "ie/8.0.0")
	parent.SetAttribute("count", 3)
	parent.SetAttribute("minify", true)
	parent.SetAttribute("features", []string{"fetch", "Promise"})
	parent.SetAttribute("other", struct{ A int }{A: 1})

	_, child := tracer.Start(ctx, "resolve")
	child.RecordError(errors.New("registry not ready"))
	child.RecordError(nil)
	child.End()
	parent.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "resolve", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
	assert.Equal(t, "bundle", ended[1].Name())
	assert.Len(t, ended[1].Attributes(), 5)
}

func TestLogBridge_ReportsFailedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, "pipeline stage failed")
	}).Times(1)

	provider := telemetry.NewProvider(telemetry.NewLogBridge(log))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	tracer := telemetry.NewOTelTracerFromProvider(provider, "test-tracer")

	_, ok := tracer.Start(context.Background(), "normalize")
	ok.End()

	_, failed := tracer.Start(context.Background(), "filter")
	failed.RecordError(errors.New("boom"))
	failed.End()
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	got, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, got)
	require.NotNil(t, span)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}
