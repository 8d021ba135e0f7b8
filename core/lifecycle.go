package core

import (
	"context"

	"go.uber.org/multierr"
)

// LifecycleEvents 管理运行时的生命周期回调
type LifecycleEvents struct {
	onLoaded []func(context.Context) error
}

// NewLifecycle 创建新的生命周期管理器
func NewLifecycle() *LifecycleEvents {
	return &LifecycleEvents{
		onLoaded: make([]func(context.Context) error, 0),
	}
}

// OnLoaded 注册加载完成回调
func (l *LifecycleEvents) OnLoaded(fn func(context.Context) error) {
	l.onLoaded = append(l.onLoaded, fn)
}

// Loaded 按注册顺序执行加载完成回调
// 回调出错不中断，返回合并后的错误
func (l *LifecycleEvents) Loaded(ctx context.Context) error {
	var errs error
	for _, fn := range l.onLoaded {
		errs = multierr.Append(errs, fn(ctx))
	}
	return errs
}
