package logr

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-logr/logr"
)

var _ logr.LogSink = (*logSink)(nil)

// logSink forwards logr records to a slog handler, mapping each v-level onto
// a slog level below info.
type logSink struct {
	h slog.Handler
}

func newLogSink(h slog.Handler) *logSink {
	return &logSink{h: h}
}

func (s *logSink) Init(logr.RuntimeInfo) {}

func (s *logSink) Enabled(level int) bool {
	return s.h.Enabled(context.Background(), toSlogLevel(level))
}

func (s *logSink) Info(level int, msg string, keysAndValues ...any) {
	s.handle(toSlogLevel(level), nil, msg, keysAndValues)
}

func (s *logSink) Error(err error, msg string, keysAndValues ...any) {
	s.handle(slog.LevelError, err, msg, keysAndValues)
}

func (s *logSink) WithValues(keysAndValues ...any) logr.LogSink {
	return &logSink{h: s.h.WithAttrs(toAttrs(keysAndValues))}
}

func (s *logSink) WithName(name string) logr.LogSink {
	return &logSink{h: s.h.WithAttrs([]slog.Attr{slog.String("logger", name)})}
}

func (s *logSink) handle(level slog.Level, err error, msg string, keysAndValues []any) {
	ctx := context.Background()
	if !s.h.Enabled(ctx, level) {
		return
	}
	r := slog.NewRecord(time.Now(), level, msg, 0)
	if err != nil {
		r.AddAttrs(slog.Any("error", err))
	}
	r.Add(keysAndValues...)
	_ = s.h.Handle(ctx, r)
}

func toAttrs(keysAndValues []any) []slog.Attr {
	r := slog.NewRecord(time.Time{}, 0, "", 0)
	r.Add(keysAndValues...)

	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	return attrs
}
