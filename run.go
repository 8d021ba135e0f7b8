package hookapi

import (
	"context"

	"github.com/gocrud/hookapi/bridge"
	"github.com/gocrud/hookapi/core"
	"github.com/gocrud/hookapi/status"
)

// Load 创建运行时并安装全部 Hook
// 返回的错误包含全部失败，运行时在出错时依然可用
func Load(ctx context.Context, opts ...core.Option) (*core.Runtime, error) {
	rt, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return rt, rt.Load(ctx)
}

// Status 返回模块状态读取器，Bridge 不是 bridge.Table 时返回 false
func Status(rt *core.Runtime) (*status.Reader, bool) {
	return core.GetFeature[*status.Reader](rt)
}

// Table 返回运行时的进程内 Bridge
func Table(rt *core.Runtime) (*bridge.Table, bool) {
	table, ok := rt.Env.Bridge.(*bridge.Table)
	return table, ok
}
