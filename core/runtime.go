// Package core 提供 Hook 引擎的运行时：收集各类型的 Hook 组，
// 在 Load 时统一安装，并在安装完成后触发生命周期回调。
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocrud/hookapi/config"
	"github.com/gocrud/hookapi/hook"
	"github.com/gocrud/hookapi/logging"
	"github.com/gocrud/hookapi/member"
	"go.uber.org/multierr"
)

// ErrAlreadyLoaded Runtime 已经加载过
var ErrAlreadyLoaded = errors.New("core: runtime already loaded")

type registration struct {
	class    *member.Class
	initiate func(c *hook.Creator)
}

// Runtime Hook 引擎的状态容器
type Runtime struct {
	// Env 创建 Hook 组时使用的环境
	Env *hook.Env

	// Configuration 当前配置
	Configuration config.Configuration

	// Lifecycle 生命周期管理
	Lifecycle *LifecycleEvents

	// Features 模块之间共享的对象
	Features FeatureCollection

	registrations []registration
	groups        []*hook.Creator
	loaded        bool

	// loggers 由配置创建的日志工厂，Close 时关闭
	loggers logging.LoggerFactory
}

// NewRuntime 创建一个新的运行时实例
func NewRuntime() *Runtime {
	return &Runtime{
		Env:           &hook.Env{DefaultTag: hook.DefaultTag},
		Configuration: config.Empty(),
		Lifecycle:     NewLifecycle(),
	}
}

// Apply 应用多个 Option
func (rt *Runtime) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(rt); err != nil {
			return err
		}
	}
	return nil
}

// Hook 注册一个类型的 Hook 组
// initiate 在 Load 时执行，此时 Env 已经确定
func (rt *Runtime) Hook(class *member.Class, initiate func(c *hook.Creator)) {
	rt.registrations = append(rt.registrations, registration{class: class, initiate: initiate})
}

// Groups 返回已创建的 Hook 组
func (rt *Runtime) Groups() []*hook.Creator {
	return append([]*hook.Creator(nil), rt.groups...)
}

// Load 安装全部 Hook 组，然后执行 OnLoaded 回调
// 单个组失败不影响其他组，返回全部失败的合并错误
func (rt *Runtime) Load(ctx context.Context) error {
	if rt.loaded {
		return ErrAlreadyLoaded
	}
	rt.loaded = true

	var errs error
	for _, reg := range rt.registrations {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		c := hook.NewCreator(rt.Env, reg.class)
		if err := configure(c, reg.initiate); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("core: configure hooks of %s: %w", reg.class, err))
			continue
		}
		rt.groups = append(rt.groups, c)
		errs = multierr.Append(errs, c.Hook())
	}

	return multierr.Append(errs, rt.Lifecycle.Loaded(ctx))
}

// configure 执行组配置，panic 转换为错误
func configure(c *hook.Creator, initiate func(c *hook.Creator)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if initiate != nil {
		initiate(c)
	}
	return nil
}

// Close 刷新并关闭由配置创建的日志
// 已安装的 Hook 不受影响
func (rt *Runtime) Close() error {
	return rt.closeLoggers()
}

func (rt *Runtime) closeLoggers() error {
	if rt.loggers == nil {
		return nil
	}
	err := rt.loggers.Close()
	rt.loggers = nil
	return err
}
