package build

import (
	"context"
	"log/slog"

	"github.com/btcsuite/btclog"
	btclogv2 "github.com/btcsuite/btclog/v2"
)

// FanoutHandler writes every record to agentctl's two log destinations: the
// console, always, and a rotating log file once --log-dir has been given.
// A long-running daemon juggling many subsystems needs an open-ended
// handler registry; agentctl only ever has this one fixed pair, so the two
// slots are named fields rather than a slice.
type FanoutHandler struct {
	level   btclog.Level
	console btclogv2.Handler
	file    btclogv2.Handler // nil when --log-dir was not given
}

// NewFanoutHandler builds a FanoutHandler writing to console and,
// optionally, file. file may be nil to log to the console alone.
func NewFanoutHandler(console, file btclogv2.Handler) *FanoutHandler {
	h := &FanoutHandler{console: console, file: file, level: btclog.LevelInfo}
	h.SetLevel(h.level)
	return h
}

func (h *FanoutHandler) handlers() []btclogv2.Handler {
	if h.file == nil {
		return []btclogv2.Handler{h.console}
	}
	return []btclogv2.Handler{h.console, h.file}
}

// Enabled reports whether every destination handles records at level.
//
// NOTE: this is part of the slog.Handler interface.
func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers() {
		if !handler.Enabled(ctx, level) {
			return false
		}
	}
	return true
}

// Handle dispatches record to every destination in turn.
//
// NOTE: this is part of the slog.Handler interface.
func (h *FanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers() {
		if err := handler.Handle(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// WithAttrs returns a handler with attrs applied to both destinations.
//
// NOTE: this is part of the slog.Handler interface.
func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newSlogFanout(h.handlers()).WithAttrs(attrs)
}

// WithGroup returns a handler with name appended to both destinations'
// groups.
//
// NOTE: this is part of the slog.Handler interface.
func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	return newSlogFanout(h.handlers()).WithGroup(name)
}

// SubSystem tags both destinations with tag.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *FanoutHandler) SubSystem(tag string) btclogv2.Handler {
	newHandler := &FanoutHandler{level: h.level}
	handlers := h.handlers()
	newHandler.console = handlers[0].SubSystem(tag)
	if len(handlers) > 1 {
		newHandler.file = handlers[1].SubSystem(tag)
	}
	return newHandler
}

// SetLevel changes the logging level on both destinations.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *FanoutHandler) SetLevel(level btclog.Level) {
	for _, handler := range h.handlers() {
		handler.SetLevel(level)
	}
	h.level = level
}

// Level returns the current logging level.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *FanoutHandler) Level() btclog.Level {
	return h.level
}

// WithPrefix returns a handler with prefix applied to both destinations.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *FanoutHandler) WithPrefix(prefix string) btclogv2.Handler {
	newHandler := &FanoutHandler{level: h.level}
	handlers := h.handlers()
	newHandler.console = handlers[0].WithPrefix(prefix)
	if len(handlers) > 1 {
		newHandler.file = handlers[1].WithPrefix(prefix)
	}
	return newHandler
}

// Ensure FanoutHandler implements btclog.Handler at compile time.
var _ btclogv2.Handler = (*FanoutHandler)(nil)

// slogFanout backs WithAttrs/WithGroup, which must return plain
// slog.Handler rather than btclog.Handler, over the same destination set.
type slogFanout struct {
	set []slog.Handler
}

func newSlogFanout(handlers []btclogv2.Handler) *slogFanout {
	set := make([]slog.Handler, len(handlers))
	for i, h := range handlers {
		set[i] = h
	}
	return &slogFanout{set: set}
}

func (s *slogFanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range s.set {
		if !handler.Enabled(ctx, level) {
			return false
		}
	}
	return true
}

func (s *slogFanout) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range s.set {
		if err := handler.Handle(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (s *slogFanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	newSet := &slogFanout{set: make([]slog.Handler, len(s.set))}
	for i, handler := range s.set {
		newSet.set[i] = handler.WithAttrs(attrs)
	}
	return newSet
}

func (s *slogFanout) WithGroup(name string) slog.Handler {
	newSet := &slogFanout{set: make([]slog.Handler, len(s.set))}
	for i, handler := range s.set {
		newSet.set[i] = handler.WithGroup(name)
	}
	return newSet
}

var _ slog.Handler = (*slogFanout)(nil)
