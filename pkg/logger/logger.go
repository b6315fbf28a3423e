package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Options struct {
	Level      slog.Leveler
	TimeFormat string
}

var DefaultOptions = Options{
	Level:      slog.LevelInfo,
	TimeFormat: time.TimeOnly,
}

// Handler is a human-oriented slog.Handler that renders colored levels
// and flattened key=value attributes on a single line.
type Handler struct {
	opts   Options
	attrs  []slog.Attr
	groups []string

	mu  *sync.Mutex
	out io.Writer
}

func NewHandler(out io.Writer, opts Options) *Handler {
	if opts.Level == nil {
		opts.Level = DefaultOptions.Level
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = DefaultOptions.TimeFormat
	}
	return &Handler{
		opts: opts,
		mu:   &sync.Mutex{},
		out:  out,
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(r.Time.Format(h.opts.TimeFormat))
	sb.WriteByte(' ')
	sb.WriteString(levelLabel(r.Level))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	attrs := make([]slog.Attr, 0, r.NumAttrs()+len(h.attrs))
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	sort.SliceStable(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })

	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(color.New(color.Faint).Sprint(h.attrKey(a.Key)))
		sb.WriteByte('=')
		sb.WriteString(fmt.Sprintf("%v", a.Value.Resolve().Any()))
	}
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	h2 := *h
	h2.groups = append(append([]string{}, h.groups...), name)
	return &h2
}

func (h *Handler) attrKey(key string) string {
	if len(h.groups) == 0 {
		return key
	}
	return strings.Join(h.groups, ".") + "." + key
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed, color.Bold).Sprint("ERR")
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow).Sprint("WRN")
	case level >= slog.LevelInfo:
		return color.New(color.FgGreen).Sprint("INF")
	default:
		return color.New(color.FgMagenta).Sprint("DBG")
	}
}

// Err is shorthand for an error attribute.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}
