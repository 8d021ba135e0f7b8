package core

import (
	"context"
	"errors"

	"github.com/gocrud/hookapi/bridge"
	"github.com/gocrud/hookapi/config"
	"github.com/gocrud/hookapi/logging"
)

// Option 定义了修改 Runtime 状态的函数签名
// 这是运行时唯一的扩展点，按传入顺序应用
type Option func(rt *Runtime) error

// WithBridge 设置 Bridge
func WithBridge(b bridge.Bridge) Option {
	return func(rt *Runtime) error {
		if b == nil {
			return errors.New("core: bridge is nil")
		}
		rt.Env.Bridge = b
		return nil
	}
}

// WithLogger 设置日志
func WithLogger(logger logging.Logger) Option {
	return func(rt *Runtime) error {
		rt.Env.Logger = logger
		return nil
	}
}

// WithDebug 设置调试模式
func WithDebug(debug bool) Option {
	return func(rt *Runtime) error {
		rt.Env.Debug = debug
		return nil
	}
}

// WithDefaultTag 设置默认标签
func WithDefaultTag(tag string) Option {
	return func(rt *Runtime) error {
		if tag != "" {
			rt.Env.DefaultTag = tag
		}
		return nil
	}
}

// WithConfiguration 设置配置，并应用 "hook" 节中的引擎配置
// 之后的 Option 会覆盖配置中的值
func WithConfiguration(cfg config.Configuration) Option {
	return func(rt *Runtime) error {
		settings, err := LoadSettings(cfg)
		if err != nil {
			return err
		}
		factory, err := settings.NewLoggerFactory()
		if err != nil {
			return err
		}
		if err := rt.closeLoggers(); err != nil {
			return err
		}

		rt.Configuration = cfg
		rt.loggers = factory
		rt.Env.Logger = factory.CreateLogger(logging.DefaultCategory)
		rt.Env.Debug = settings.Debug
		if settings.DefaultTag != "" {
			rt.Env.DefaultTag = settings.DefaultTag
		}
		return nil
	}
}

// WithModule 添加模块
func WithModule(m Module) Option {
	return func(rt *Runtime) error {
		if err := validateModule(m); err != nil {
			return err
		}
		if c, ok := m.(HookConfigurator); ok {
			c.ConfigureHooks(rt)
		}
		if l, ok := m.(LoadListener); ok {
			rt.Lifecycle.OnLoaded(func(ctx context.Context) error {
				return l.OnLoaded(ctx, rt)
			})
		}
		return nil
	}
}
