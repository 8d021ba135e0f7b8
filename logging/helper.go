package logging

// DefaultCategory Hook 引擎默认的日志类别
const DefaultCategory = "HookAPI"

// NewLogger 创建一个默认的控制台 Logger
func NewLogger() Logger {
	builder := NewLoggingBuilder()
	builder.AddConsole()
	factory := builder.Build()
	return factory.CreateLogger(DefaultCategory)
}

// NewMemoryLogger 创建记录全部级别的内存 Logger，返回 Logger 与其提供者
func NewMemoryLogger() (Logger, *MemoryLoggerProvider) {
	builder := NewLoggingBuilder().SetMinimumLevel(LogLevelTrace)
	provider := builder.AddMemory()
	return builder.Build().CreateLogger(DefaultCategory), provider
}
