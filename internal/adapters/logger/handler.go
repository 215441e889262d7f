package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

const (
	symbolWarning = "!"
	symbolCross   = "✗"

	colorYellow = "#E5C07B"
	colorRed    = "#E06C75"
	colorSlate  = "#94A3B8"
)

// PrettyHandler is a custom slog.Handler that produces human-readable,
// colored output. Attributes render as key=value after the message; values
// holding spaces, such as raw identity strings, are quoted and string slices,
// such as capability lists, are joined with commas.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	prefix []string // preformatted handler-level attrs
	group  string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
// Color is disabled when NO_COLOR is set or w is not a terminal.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   termenv.NewOutput(w, termenv.WithColorCache(true)),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	msg, color := h.decorate(r.Level, r.Message)

	parts := slices.Clone(h.prefix)
	r.Attrs(func(attr slog.Attr) bool {
		parts = appendAttr(parts, h.group, attr)
		return true
	})
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}

	styled := h.out.String(msg).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

func (h *PrettyHandler) decorate(level slog.Level, msg string) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return symbolCross + " " + msg, h.out.Color(colorRed)
	case level >= slog.LevelWarn:
		return symbolWarning + " " + msg, h.out.Color(colorYellow)
	default:
		return msg, h.out.Color(colorSlate)
	}
}

// WithAttrs returns a new Handler with the given attributes appended. They
// are qualified with the group active at the time of the call.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := slices.Clone(h.prefix)
	for _, attr := range attrs {
		prefix = appendAttr(prefix, h.group, attr)
	}
	return &PrettyHandler{out: h.out, level: h.level, prefix: prefix, group: h.group}
}

// WithGroup returns a new Handler that nests subsequent attributes under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &PrettyHandler{out: h.out, level: h.level, prefix: h.prefix, group: qualify(h.group, name)}
}

// appendAttr formats attr under group and appends it to parts. Group values
// are flattened into dotted keys and empty attributes are dropped.
func appendAttr(parts []string, group string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}
	if attr.Value.Kind() == slog.KindGroup {
		nested := group
		if attr.Key != "" {
			nested = qualify(group, attr.Key)
		}
		for _, a := range attr.Value.Group() {
			parts = appendAttr(parts, nested, a)
		}
		return parts
	}
	return append(parts, qualify(group, attr.Key)+"="+formatValue(attr.Value))
}

func formatValue(v slog.Value) string {
	s := v.String()
	if v.Kind() == slog.KindAny {
		if list, ok := v.Any().([]string); ok {
			s = strings.Join(list, ",")
		}
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func qualify(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}
