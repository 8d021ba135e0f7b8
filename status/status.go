// Package status 报告 Hook 引擎自身的激活状态。
//
// Module 的方法返回未激活时的默认值，引擎加载时通过 Bridge 把它们替换为真实值。
// 读取状态需要经过 Bridge 调用，参见 Reader。
package status

import (
	"github.com/gocrud/hookapi/bridge"
	"github.com/gocrud/hookapi/hook"
	"github.com/gocrud/hookapi/member"
)

const (
	// Tag 状态 Hook 的标签
	Tag = "ModuleStatus"

	unknownName    = "unknown"
	unknownVersion = -1
)

// Module 状态哨兵
type Module struct{}

// IsActive 模块是否已激活
func (*Module) IsActive() bool { return false }

// ExecutorName 执行器名称
func (*Module) ExecutorName() string { return unknownName }

// ExecutorVersion 执行器版本
func (*Module) ExecutorVersion() int { return unknownVersion }

// Class 返回 Module 的类描述
func Class() *member.Class {
	return member.ClassOf[*Module]()
}

// Configure 在 Hook 组中注入状态 Hook
// d 为空时只替换 IsActive
func Configure(c *hook.Creator, d bridge.Descriptor) {
	c.InjectMember(Tag, func(m *hook.MemberCreator) {
		m.Method(func(f *member.MethodFinder) { f.Name = "IsActive" })
		m.ReplaceToTrue()
	})
	if d == nil {
		return
	}
	c.InjectMember(Tag, func(m *hook.MemberCreator) {
		m.Method(func(f *member.MethodFinder) { f.Name = "ExecutorName" })
		m.ReplaceTo(d.Name())
	})
	c.InjectMember(Tag, func(m *hook.MemberCreator) {
		m.Method(func(f *member.MethodFinder) { f.Name = "ExecutorVersion" })
		m.ReplaceTo(d.Version())
	})
}

// Caller 通过 Bridge 调用成员
type Caller interface {
	Call(m *member.Member, instance any, args ...any) (any, error)
}

// Reader 经由 Bridge 读取状态
type Reader struct {
	caller Caller
	module *Module
	class  *member.Class
}

// NewReader 创建 Reader
func NewReader(caller Caller) *Reader {
	return &Reader{caller: caller, module: &Module{}, class: Class()}
}

func (r *Reader) call(name string) any {
	m, err := member.NewMethodFinder(name).Locate(r.class)
	if err != nil {
		return nil
	}
	v, err := r.caller.Call(m, r.module)
	if err != nil {
		return nil
	}
	return v
}

// IsActive 模块是否已激活
func (r *Reader) IsActive() bool {
	v, _ := r.call("IsActive").(bool)
	return v
}

// ExecutorName 执行器名称，未激活时为 "unknown"
func (r *Reader) ExecutorName() string {
	if v, ok := r.call("ExecutorName").(string); ok {
		return v
	}
	return unknownName
}

// ExecutorVersion 执行器版本，未激活时为 -1
func (r *Reader) ExecutorVersion() int {
	if v, ok := r.call("ExecutorVersion").(int); ok {
		return v
	}
	return unknownVersion
}
