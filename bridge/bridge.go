// Package bridge 定义 Hook 引擎与底层插桩机制之间的接口。
//
// Bridge 负责把一个 Shim 安装到已解析的成员上；引擎只关心安装是否成功。
// Table 是进程内的参考实现：被 Hook 的成员通过 Table.Call 调用，
// 由 Table 负责按顺序执行 Shim 与原始函数体。
package bridge

import (
	"github.com/gocrud/hookapi/member"
)

// Mode 拦截模式
type Mode int

const (
	// ModeAround 在原始函数体前后执行回调
	ModeAround Mode = iota
	// ModeReplace 替换原始函数体
	ModeReplace
)

// String 返回模式的字符串表示
func (m Mode) String() string {
	switch m {
	case ModeAround:
		return "Around"
	case ModeReplace:
		return "Replace"
	default:
		return "Unknown"
	}
}

// Shim 安装在成员上的拦截器
// ModeAround 只会调用 BeforeHookedMember/AfterHookedMember，
// ModeReplace 只会调用 ReplaceHookedMember。
type Shim interface {
	BeforeHookedMember(frame *Frame)
	AfterHookedMember(frame *Frame)
	ReplaceHookedMember(frame *Frame) any
}

// Bridge 底层插桩接口
type Bridge interface {
	Install(m *member.Member, mode Mode, shim Shim) error
}

// Descriptor 可选接口，描述 Bridge 的名称与版本
type Descriptor interface {
	Name() string
	Version() int
}

// Frame 一次真实调用的上下文
type Frame struct {
	Member   *member.Member
	Instance any
	Args     []any

	result      any
	err         error
	returnEarly bool
}

// Result 返回当前返回值
func (f *Frame) Result() any { return f.result }

// SetResult 设置返回值
// 在 BeforeHookedMember 中调用会跳过原始函数体
func (f *Frame) SetResult(v any) {
	f.result = v
	f.err = nil
	f.returnEarly = true
}

// Err 返回当前调用错误
func (f *Frame) Err() error { return f.err }

// SetErr 设置调用错误
// 在 BeforeHookedMember 中调用会跳过原始函数体
func (f *Frame) SetErr(err error) {
	f.err = err
	f.returnEarly = true
}

// ReturnEarly 是否已跳过原始函数体
func (f *Frame) ReturnEarly() bool { return f.returnEarly }
