package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLoggerProvider 使用 zap 作为后端的日志提供者
type ZapLoggerProvider struct {
	base  *zap.Logger
	level levelHolder
}

// NewZapLoggerProvider 创建 zap 日志提供者
// base 为 nil 时使用 zap.NewProduction
func NewZapLoggerProvider(base *zap.Logger) (*ZapLoggerProvider, error) {
	if base == nil {
		var err error
		base, err = zap.NewProduction()
		if err != nil {
			return nil, err
		}
	}
	p := &ZapLoggerProvider{base: base}
	p.level.set(LogLevelInfo)
	return p, nil
}

func (p *ZapLoggerProvider) CreateLogger(category string) Logger {
	named := p.base
	if category != "" {
		named = named.Named(category)
	}
	return &sinkLogger{
		category: category,
		level:    p.level.get,
		sink: func(entry *LogEntry) {
			if ce := named.Check(zapLevel(entry.Level), entry.Message); ce != nil {
				ce.Write(zapFields(entry.Fields)...)
			}
		},
	}
}

func (p *ZapLoggerProvider) SetMinimumLevel(level LogLevel) {
	p.level.set(level)
}

// Sync 刷新 zap 缓冲
func (p *ZapLoggerProvider) Sync() error {
	return p.base.Sync()
}

func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LogLevelTrace, LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func zapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			out = append(out, zap.NamedError(f.Key, err))
			continue
		}
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
