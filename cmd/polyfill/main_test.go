package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/polyfill/internal/adapters/catalog"
	"go.trai.ch/polyfill/internal/adapters/catalog/catalogtest"
	"go.trai.ch/polyfill/internal/adapters/metrics"
	"go.trai.ch/polyfill/internal/adapters/telemetry"
	"go.trai.ch/polyfill/internal/app"
	"go.trai.ch/polyfill/internal/core/ports/mocks"
	"go.trai.ch/polyfill/internal/engine/useragent"
	"go.uber.org/mock/gomock"
)

func provide(t *testing.T, log *mocks.MockLogger) ComponentProvider {
	t.Helper()
	registry := catalog.NewRegistry(2)
	a := app.New(registry, useragent.NewNormalizer(nil), log, telemetry.NewNoOpTracer(),
		app.WithCatalogLoader(registry))
	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: log, Metrics: metrics.New()}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provide(t, log))
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "polyfill version")
}

// TestRun_Bundle runs a bundle against an on-disk catalog.
func TestRun_Bundle(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(),
		[]string{"bundle", "--catalog", catalogtest.WriteDir(t), "--ua", "ie/8", "-f", "Element"},
		stdout, new(bytes.Buffer), provide(t, log))

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "UA detected: ie/8.0.0")
	assert.Contains(t, stdout.String(), catalogtest.Raw("Document"))
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(),
		[]string{"list", "--catalog", t.TempDir() + "/missing"},
		new(bytes.Buffer), new(bytes.Buffer), provide(t, log))

	assert.Equal(t, 1, exitCode)
}
