package logging

import (
	"fmt"
	"os"
	"sync"
)

// FileLoggerOptions 文件日志选项
type FileLoggerOptions struct {
	Path string
	// Formatter 为空时使用不带颜色的 TextFormatter
	Formatter  Formatter
	BufferSize int
}

// FileLoggerProvider 文件日志提供者，通过 AsyncWriter 写入
type FileLoggerProvider struct {
	options FileLoggerOptions
	level   levelHolder
	file    *os.File
	writer  *AsyncWriter
	mu      sync.Mutex
}

// NewFileLoggerProvider 创建文件日志提供者
func NewFileLoggerProvider(options FileLoggerOptions) *FileLoggerProvider {
	if options.Formatter == nil {
		options.Formatter = NewTextFormatter()
	}
	if options.BufferSize <= 0 {
		options.BufferSize = 256
	}
	p := &FileLoggerProvider{options: options}
	p.level.set(LogLevelInfo)
	return p
}

func (p *FileLoggerProvider) CreateLogger(category string) Logger {
	p.mu.Lock()
	defer p.mu.Unlock()

	// 延迟打开文件
	if p.writer == nil {
		file, err := os.OpenFile(p.options.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			fallback := NewConsoleLoggerProvider(ConsoleLoggerOptions{Output: os.Stderr})
			fallback.SetMinimumLevel(p.level.get())
			return fallback.CreateLogger(category)
		}
		p.file = file
		p.writer = NewAsyncWriter(file, p.options.Formatter, p.options.BufferSize)
	}

	return &sinkLogger{category: category, level: p.level.get, sink: p.writer.WriteLog}
}

func (p *FileLoggerProvider) SetMinimumLevel(level LogLevel) {
	p.level.set(level)
}

// Close 刷新并关闭日志文件
func (p *FileLoggerProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writer == nil {
		return nil
	}
	p.writer.Close()
	p.writer = nil
	return p.file.Close()
}
