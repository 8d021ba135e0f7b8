// Package hookapi 是 Hook 引擎的入口。
//
//	rt, err := hookapi.Load(ctx,
//		core.WithModule(&MyModule{}),
//	)
//
// 未指定 Bridge 时使用进程内的 bridge.Table。
package hookapi

import (
	"github.com/gocrud/hookapi/bridge"
	"github.com/gocrud/hookapi/core"
	"github.com/gocrud/hookapi/hook"
	"github.com/gocrud/hookapi/status"
)

// New 创建运行时并应用选项，不安装 Hook
func New(opts ...core.Option) (*core.Runtime, error) {
	rt := core.NewRuntime()
	if err := rt.Apply(opts...); err != nil {
		return nil, err
	}
	if rt.Env.Bridge == nil {
		rt.Env.Bridge = bridge.NewTable()
	}

	// 进程内 Bridge 同时报告模块状态
	if table, ok := rt.Env.Bridge.(*bridge.Table); ok {
		rt.Hook(status.Class(), func(c *hook.Creator) {
			status.Configure(c, table)
		})
		rt.Features.Set(status.NewReader(table))
	}
	return rt, nil
}
