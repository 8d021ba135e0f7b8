package core

import (
	"context"
	"fmt"
)

// Module Hook 模块的基础接口
// 模块应该实现 HookConfigurator 或 LoadListener 接口（或两者都实现）
type Module interface {
	// Name 返回模块名称，用于日志记录和调试
	Name() string
}

// HookConfigurator 负责注册 Hook 组
type HookConfigurator interface {
	// ConfigureHooks 在此方法中调用 rt.Hook
	ConfigureHooks(rt *Runtime)
}

// LoadListener 在全部 Hook 组安装后收到通知
type LoadListener interface {
	OnLoaded(ctx context.Context, rt *Runtime) error
}

// validateModule 验证模块是否实现了支持的接口
func validateModule(m Module) error {
	_, isHookConfigurator := m.(HookConfigurator)
	_, isLoadListener := m.(LoadListener)

	if !isHookConfigurator && !isLoadListener {
		return fmt.Errorf("core: module '%s' does not implement any supported interfaces (HookConfigurator, LoadListener). "+
			"Check if your method signatures exactly match the interface definitions", m.Name())
	}
	return nil
}
