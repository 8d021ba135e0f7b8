package hook

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// 错误类型
var (
	// ErrNoTargetConfigured 安装时没有设置成员，也没有运行过查找
	ErrNoTargetConfigured = errors.New("hook: member cannot be non-null")
	// ErrTargetNotFound 查找已运行但没有找到成员
	ErrTargetNotFound = errors.New("hook: member finding error")
	// ErrBridgeInstall Bridge 拒绝安装
	ErrBridgeInstall = errors.New("hook: bridge install failed")
	// ErrCallbackFailure 回调在真实调用中失败
	ErrCallbackFailure = errors.New("hook: callback failed")
	// ErrEmptyGroup 没有配置任何要 Hook 的成员
	ErrEmptyGroup = errors.New("hook: hook members is empty")
	// ErrNoBridge 环境中没有 Bridge
	ErrNoBridge = errors.New("hook: no bridge configured")
)

// Error Hook 过程中的错误
// errors.Is 同时匹配 Kind 与 Err 链，多个 Error 合并时各自计为一个错误
type Error struct {
	Kind   error
	Class  string
	Member string
	Tag    string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v: class [%s] member [%s] tag [%s]", e.Kind, e.Class, e.Member, e.Tag)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is 匹配错误类型
func (e *Error) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// PanicError 回调中发生的 panic
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// barrier 在隔离中执行 fn，panic 转换为 *PanicError
func barrier(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}
