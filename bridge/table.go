package bridge

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/gocrud/hookapi/member"
)

var (
	// ErrNilMember 成员为空
	ErrNilMember = errors.New("bridge: member is nil")
	// ErrNotInvocable 成员没有可调用的函数体
	ErrNotInvocable = errors.New("bridge: member is not invocable")
	// ErrUnknownMode 未知的拦截模式
	ErrUnknownMode = errors.New("bridge: unknown mode")
)

const (
	tableName    = "HookAPIBridge"
	tableVersion = 1
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

type installed struct {
	mode Mode
	shim Shim
}

// Table 进程内 Bridge 实现
//
// 成员按 member.Key 识别，重新查找得到的成员共享已安装的 Shim。
// 同一成员可以安装多个 Shim，按安装顺序执行 Before，逆序执行 After。
// Call 可被多个 goroutine 并发调用。
type Table struct {
	mu    sync.RWMutex
	slots map[member.Key][]installed
}

// NewTable 创建 Table
func NewTable() *Table {
	return &Table{slots: make(map[member.Key][]installed)}
}

// Name 返回 Bridge 名称
func (t *Table) Name() string { return tableName }

// Version 返回 Bridge 版本
func (t *Table) Version() int { return tableVersion }

// Install 实现 Bridge 接口
func (t *Table) Install(m *member.Member, mode Mode, shim Shim) error {
	if m == nil {
		return ErrNilMember
	}
	if !m.Func.IsValid() || m.Func.Kind() != reflect.Func {
		return fmt.Errorf("%w: %s", ErrNotInvocable, m)
	}
	if mode != ModeAround && mode != ModeReplace {
		return fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}
	if shim == nil {
		return fmt.Errorf("bridge: nil shim for %s", m)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.slots[m.Key()] = append(t.slots[m.Key()], installed{mode: mode, shim: shim})
	return nil
}

// IsHooked 成员是否已安装 Shim
func (t *Table) IsHooked(m *member.Member) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.slots[m.Key()]) > 0
}

// Call 通过 Table 调用成员
// 方法需要传入 instance 作为接收者；构造函数的 instance 为 nil。
func (t *Table) Call(m *member.Member, instance any, args ...any) (any, error) {
	if m == nil {
		return nil, ErrNilMember
	}

	t.mu.RLock()
	shims := t.slots[m.Key()]
	t.mu.RUnlock()

	frame := &Frame{Member: m, Instance: instance, Args: args}

	// 执行到的 Shim 数量，After 只对这些 Shim 逆序执行
	ran := 0
	for _, s := range shims {
		ran++
		if s.mode == ModeReplace {
			result := s.shim.ReplaceHookedMember(frame)
			// 替换回调中通过 SetErr 设置的错误保留
			err := frame.err
			frame.SetResult(result)
			frame.err = err
		} else {
			s.shim.BeforeHookedMember(frame)
		}
		if frame.returnEarly {
			break
		}
	}

	if !frame.returnEarly {
		frame.result, frame.err = invoke(m, frame.Instance, frame.Args)
	}

	for i := ran - 1; i >= 0; i-- {
		if shims[i].mode == ModeAround {
			shims[i].shim.AfterHookedMember(frame)
		}
	}

	return frame.result, frame.err
}

// invoke 通过反射调用原始函数体
func invoke(m *member.Member, instance any, args []any) (any, error) {
	if !m.Func.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrNotInvocable, m)
	}
	fnType := m.Func.Type()

	in := make([]any, 0, len(args)+1)
	if m.Kind == member.KindMethod {
		in = append(in, instance)
	}
	in = append(in, args...)

	if !fnType.IsVariadic() && len(in) != fnType.NumIn() {
		return nil, fmt.Errorf("bridge: %s expects %d arguments, got %d", m, fnType.NumIn(), len(in))
	}
	if fnType.IsVariadic() && len(in) < fnType.NumIn()-1 {
		return nil, fmt.Errorf("bridge: %s expects at least %d arguments, got %d", m, fnType.NumIn()-1, len(in))
	}

	values := make([]reflect.Value, len(in))
	for i, arg := range in {
		pt := paramType(fnType, i)
		if arg == nil {
			values[i] = reflect.Zero(pt)
			continue
		}
		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(pt) {
			if !v.Type().ConvertibleTo(pt) {
				return nil, fmt.Errorf("bridge: %s argument %d: cannot use %s as %s", m, i, v.Type(), pt)
			}
			v = v.Convert(pt)
		}
		values[i] = v
	}

	return unpack(m.Func.Call(values))
}

func paramType(fnType reflect.Type, i int) reflect.Type {
	if fnType.IsVariadic() && i >= fnType.NumIn()-1 {
		return fnType.In(fnType.NumIn() - 1).Elem()
	}
	return fnType.In(i)
}

// unpack 将返回值拆分为结果与错误
// 多个非 error 返回值以 []any 返回
func unpack(out []reflect.Value) (any, error) {
	var err error
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			err = out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	default:
		results := make([]any, len(out))
		for i, v := range out {
			results[i] = v.Interface()
		}
		return results, err
	}
}
