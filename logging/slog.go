package logging

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// slogLevelTrace slog 没有 TRACE 级别，取 Debug 以下
const slogLevelTrace = slog.LevelDebug - 4

// SlogLoggerProvider 使用 slog.Handler 作为后端的日志提供者
type SlogLoggerProvider struct {
	handler slog.Handler
	level   levelHolder
}

// NewSlogLoggerProvider 创建 slog 日志提供者
func NewSlogLoggerProvider(handler slog.Handler) *SlogLoggerProvider {
	p := &SlogLoggerProvider{handler: handler}
	p.level.set(LogLevelInfo)
	return p
}

// NewTintLoggerProvider 创建带颜色的 slog 控制台日志提供者
func NewTintLoggerProvider(w io.Writer, noColor bool) *SlogLoggerProvider {
	return NewSlogLoggerProvider(tint.NewHandler(w, &tint.Options{
		Level:      slogLevelTrace,
		TimeFormat: time.DateTime,
		NoColor:    noColor,
	}))
}

func (p *SlogLoggerProvider) CreateLogger(category string) Logger {
	logger := slog.New(p.handler)
	if category != "" {
		logger = logger.With(slog.String("category", category))
	}
	return &sinkLogger{
		category: category,
		level:    p.level.get,
		sink: func(entry *LogEntry) {
			logger.LogAttrs(context.Background(), slogLevel(entry.Level), entry.Message, slogAttrs(entry.Fields)...)
		},
	}
}

func (p *SlogLoggerProvider) SetMinimumLevel(level LogLevel) {
	p.level.set(level)
}

func slogLevel(level LogLevel) slog.Level {
	switch level {
	case LogLevelTrace:
		return slogLevelTrace
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func slogAttrs(fields []Field) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			attrs = append(attrs, tint.Err(err))
			continue
		}
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	return attrs
}
