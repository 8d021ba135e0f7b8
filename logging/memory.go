package logging

import (
	"strings"
	"sync"
)

// MemoryLoggerProvider 将日志保存在内存中
// 适合在测试中断言输出，或收集 Hook 诊断信息
type MemoryLoggerProvider struct {
	level   levelHolder
	mu      sync.Mutex
	entries []LogEntry
}

// NewMemoryLoggerProvider 创建内存日志提供者，默认记录全部级别
func NewMemoryLoggerProvider() *MemoryLoggerProvider {
	p := &MemoryLoggerProvider{}
	p.level.set(LogLevelTrace)
	return p
}

func (p *MemoryLoggerProvider) CreateLogger(category string) Logger {
	return &sinkLogger{category: category, level: p.level.get, sink: p.append}
}

func (p *MemoryLoggerProvider) SetMinimumLevel(level LogLevel) {
	p.level.set(level)
}

func (p *MemoryLoggerProvider) append(entry *LogEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, *entry)
}

// Entries 返回已记录条目的副本
func (p *MemoryLoggerProvider) Entries() []LogEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]LogEntry(nil), p.entries...)
}

// Filter 返回指定级别且消息包含 substr 的条目
func (p *MemoryLoggerProvider) Filter(level LogLevel, substr string) []LogEntry {
	var out []LogEntry
	for _, e := range p.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			out = append(out, e)
		}
	}
	return out
}

// Reset 清空已记录条目
func (p *MemoryLoggerProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = nil
}
