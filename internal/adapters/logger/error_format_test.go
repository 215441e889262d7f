package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/polyfill/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	t.Parallel()

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()
		entries := logger.CollectErrorEntries(errors.New("plain"))
		assert.Equal(t, []logger.ErrorEntry{{Message: "plain"}}, entries)
	})

	t.Run("wrapped chain", func(t *testing.T) {
		t.Parallel()
		err := zerr.Wrap(zerr.New("inner error"), "outer error")
		entries := logger.CollectErrorEntries(err)
		assert.Len(t, entries, 2)
		assert.Equal(t, "outer error", entries[0].Message)
		assert.Equal(t, "inner error", entries[1].Message)
	})

	t.Run("metadata", func(t *testing.T) {
		t.Parallel()
		err := zerr.With(zerr.New("main error"), "key", "value")
		entries := logger.CollectErrorEntries(err)
		assert.Len(t, entries, 1)
		assert.Equal(t, "value", entries[0].Metadata["key"])
	})
}

func TestFormatErrorEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "with cause",
			entries: []logger.ErrorEntry{{Message: "outer error"}, {Message: "inner error"}},
			want:    "Error: outer error\n\n  Caused by:\n    → inner error",
		},
		{
			name: "metadata sorted",
			entries: []logger.ErrorEntry{{
				Message:  "main error",
				Metadata: map[string]any{"zeta": 1, "alpha": "a"},
			}},
			want: "Error: main error\n       alpha: a\n       zeta: 1",
		},
		{
			name:    "multiline message",
			entries: []logger.ErrorEntry{{Message: "first\nsecond"}},
			want:    "Error: first\n       second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}

func TestCollectErrorEntries_UpgradedStdError(t *testing.T) {
	t.Parallel()

	err := zerr.With(errors.New("open catalog: no such file"), "path", "/srv/catalog")
	entries := logger.CollectErrorEntries(err)

	assert.Equal(t, []logger.ErrorEntry{{
		Message:  "open catalog: no such file",
		Metadata: map[string]any{"path": "/srv/catalog"},
	}}, entries)
}
