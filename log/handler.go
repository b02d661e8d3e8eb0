// Package log provides structured logging (slog) for the egress layer's
// diagnostic output.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Handler implements slog.Handler, writing single-line prefixed records.
// Records are written under a mutex so hooks running in concurrent
// goroutines do not interleave output.
type Handler struct {
	opts  handlerConfig
	attrs []slog.Attr
	mu    *sync.Mutex
	w     io.Writer
}

// HandlerOption configures the Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level  slog.Leveler
	prefix string
	writer io.Writer
}

func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level:  slog.LevelInfo,
		prefix: "[netlock]",
		writer: os.Stderr,
	}
}

// WithLevel sets the minimum log level to report. Passing a *slog.LevelVar
// lets the level be changed after construction.
func WithLevel(level slog.Leveler) HandlerOption {
	return func(c *handlerConfig) {
		if level != nil {
			c.level = level
		}
	}
}

// WithPrefix sets the line prefix.
func WithPrefix(prefix string) HandlerOption {
	return func(c *handlerConfig) {
		c.prefix = prefix
	}
}

// WithWriter sets the output writer. Default is stderr.
func WithWriter(w io.Writer) HandlerOption {
	return func(c *handlerConfig) {
		if w != nil {
			c.writer = w
		}
	}
}

// NewHandler creates a new Handler with the given options.
func NewHandler(opts ...HandlerOption) *Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{
		opts: cfg,
		mu:   &sync.Mutex{},
		w:    cfg.writer,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level.Level()
}

// Handle writes one record as a single line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(h.opts.prefix)
	b.WriteByte(' ')
	b.WriteString(r.Level.String())
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(&b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs returns a new Handler that includes the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := *h
	newHandler.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &newHandler
}

// WithGroup returns a new Handler with the given group name. Groups are
// flattened into a key prefix.
func (h *Handler) WithGroup(name string) slog.Handler {
	newHandler := *h
	if name != "" {
		newHandler.opts.prefix = h.opts.prefix + " " + name + ":"
	}
	return &newHandler
}

func writeAttr(b *strings.Builder, a slog.Attr) {
	b.WriteByte(' ')
	b.WriteString(a.Key)
	b.WriteByte('=')
	fmt.Fprintf(b, "%v", a.Value.Any())
}
