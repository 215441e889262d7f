package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/polyfill/internal/adapters/logger"
)

func newPretty(buf *bytes.Buffer) *slog.Logger {
	return slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info", level: slog.LevelInfo, msg: "catalog loaded: 12 capabilities", goldenName: "handler_level_info"},
		{name: "warn", level: slog.LevelWarn, msg: "features not recognised: foo", goldenName: "handler_level_warn"},
		{name: "error", level: slog.LevelError, msg: "failed to build bundle", goldenName: "handler_level_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			newPretty(buf).Log(context.Background(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name       string
		attrs      []any
		msg        string
		goldenName string
	}{
		{
			name:       "raw identity is quoted",
			attrs:      []any{"ua", "Mozilla/4.0 (compatible; MSIE 8.0)"},
			msg:        "normalized",
			goldenName: "handler_attrs_identity",
		},
		{
			name:       "capability list is comma joined",
			attrs:      []any{"capabilities", []string{"fetch", "Promise"}},
			msg:        "resolved",
			goldenName: "handler_attrs_list",
		},
		{
			name:       "empty value",
			attrs:      []any{"policy", ""},
			msg:        "empty value",
			goldenName: "handler_attrs_empty",
		},
		{
			name:       "group value is flattened",
			attrs:      []any{slog.Group("runtime", slog.String("family", "ie"), slog.Int("major", 8))},
			msg:        "unsupported",
			goldenName: "handler_attrs_group_value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			newPretty(buf).Info(tt.msg, tt.attrs...)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	newPretty(buf).
		With("capability", "fetch").
		WithGroup("request").
		WithGroup("ua").
		Info("resolved", "family", "chrome", "major", 70)

	g := goldie.New(t)
	g.Assert(t, "handler_with_group", buf.Bytes())
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}
