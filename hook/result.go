package hook

import (
	"fmt"
)

type failureScope int

const (
	scopeConduct failureScope = iota
	scopeHooking
)

// failurePolicy 失败处理器
// 安装时按值拷贝，安装后的修改不影响已安装的 Hook
type failurePolicy struct {
	onConduct func(param *Param, err error)
	onHooking func(err error)
	onAll     func(err error)
}

// report 把错误交给第一个可用的处理器，都没有时输出默认日志
//
// 调用失败: onConduct > onAll > 默认日志
// 安装失败: onHooking > onAll > 默认日志
func (p failurePolicy) report(scope failureScope, param *Param, err error, fallback func(error)) {
	var handle func()
	switch {
	case scope == scopeConduct && p.onConduct != nil:
		handle = func() { p.onConduct(param, err) }
	case scope == scopeHooking && p.onHooking != nil:
		handle = func() { p.onHooking(err) }
	case p.onAll != nil:
		handle = func() { p.onAll(err) }
	default:
		fallback(err)
		return
	}

	// 处理器自身 panic 时回退到默认日志
	if herr := barrier(func() error { handle(); return nil }); herr != nil {
		fallback(fmt.Errorf("%w; failure handler: %w", err, herr))
	}
}

// Result 成员 Hook 的句柄
// 在安装前设置失败处理器
type Result struct {
	entry *MemberCreator
}

// Failures 在 initiate 中统一设置失败处理器
func (r *Result) Failures(initiate func(r *Result)) *Result {
	if initiate != nil {
		initiate(r)
	}
	return r
}

// OnConductFailure 监听回调在调用中的失败
func (r *Result) OnConductFailure(fn func(param *Param, err error)) *Result {
	r.entry.failures.onConduct = fn
	return r
}

// OnHookingFailure 监听安装失败
func (r *Result) OnHookingFailure(fn func(err error)) *Result {
	r.entry.failures.onHooking = fn
	return r
}

// OnAllFailure 监听全部失败
func (r *Result) OnAllFailure(fn func(err error)) *Result {
	r.entry.failures.onAll = fn
	return r
}

// IgnoredConductFailure 忽略调用失败
func (r *Result) IgnoredConductFailure() *Result {
	return r.OnConductFailure(func(*Param, error) {})
}

// IgnoredHookingFailure 忽略安装失败
func (r *Result) IgnoredHookingFailure() *Result {
	return r.OnHookingFailure(func(error) {})
}

// IgnoredAllFailure 忽略全部失败
func (r *Result) IgnoredAllFailure() *Result {
	return r.OnAllFailure(func(error) {})
}

// Entry 返回对应的成员配置
func (r *Result) Entry() *MemberCreator { return r.entry }
