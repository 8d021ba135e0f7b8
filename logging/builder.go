package logging

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
)

// LoggingBuilder 日志构建器
type LoggingBuilder struct {
	providers    []LoggerProvider
	minimumLevel LogLevel
	mu           sync.RWMutex
}

// NewLoggingBuilder 创建日志构建器
func NewLoggingBuilder() *LoggingBuilder {
	return &LoggingBuilder{
		providers:    make([]LoggerProvider, 0),
		minimumLevel: LogLevelInfo,
	}
}

// SetMinimumLevel 设置最小日志级别
func (b *LoggingBuilder) SetMinimumLevel(level LogLevel) *LoggingBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.minimumLevel = level
	return b
}

// AddProvider 添加日志提供者
func (b *LoggingBuilder) AddProvider(provider LoggerProvider) *LoggingBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.providers = append(b.providers, provider)
	return b
}

// AddConsole 添加控制台日志
func (b *LoggingBuilder) AddConsole(options ...ConsoleLoggerOptions) *LoggingBuilder {
	opts := ConsoleLoggerOptions{
		IncludeTimestamp: true,
		TimestampFormat:  "2006-01-02 15:04:05",
		ColorOutput:      true,
		Output:           os.Stdout,
	}
	if len(options) > 0 {
		opts = options[0]
	}
	return b.AddProvider(NewConsoleLoggerProvider(opts))
}

// AddJsonConsole 添加 JSON 格式的控制台日志
func (b *LoggingBuilder) AddJsonConsole(output io.Writer) *LoggingBuilder {
	return b.AddProvider(NewConsoleLoggerProvider(ConsoleLoggerOptions{
		Formatter: NewJsonFormatter(),
		Output:    output,
	}))
}

// AddFile 添加文件日志
func (b *LoggingBuilder) AddFile(path string, options ...FileLoggerOptions) *LoggingBuilder {
	opts := FileLoggerOptions{Path: path}
	if len(options) > 0 {
		opts = options[0]
		opts.Path = path
	}
	return b.AddProvider(NewFileLoggerProvider(opts))
}

// AddZap 添加 zap 日志，base 为 nil 时使用生产配置
// zap 初始化失败时回退到控制台日志
func (b *LoggingBuilder) AddZap(base *zap.Logger) *LoggingBuilder {
	provider, err := NewZapLoggerProvider(base)
	if err != nil {
		return b.AddConsole()
	}
	return b.AddProvider(provider)
}

// AddTint 添加 tint 彩色 slog 控制台日志
func (b *LoggingBuilder) AddTint(output io.Writer, noColor bool) *LoggingBuilder {
	if output == nil {
		output = os.Stderr
	}
	return b.AddProvider(NewTintLoggerProvider(output, noColor))
}

// AddMemory 添加内存日志并返回提供者，便于读取记录
func (b *LoggingBuilder) AddMemory() *MemoryLoggerProvider {
	provider := NewMemoryLoggerProvider()
	b.AddProvider(provider)
	return provider
}

// Build 构建日志工厂
func (b *LoggingBuilder) Build() LoggerFactory {
	b.mu.RLock()
	defer b.mu.RUnlock()

	factory := &loggerFactory{
		providers:    make([]LoggerProvider, 0, len(b.providers)),
		minimumLevel: b.minimumLevel,
	}

	for _, provider := range b.providers {
		factory.AddProvider(provider)
	}

	return factory
}
