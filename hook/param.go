package hook

import (
	"fmt"
	"reflect"

	"github.com/gocrud/hookapi/bridge"
	"github.com/gocrud/hookapi/member"
)

// Param 回调参数，对应一次真实调用
type Param struct {
	frame *bridge.Frame
}

func newParam(frame *bridge.Frame) *Param {
	return &Param{frame: frame}
}

// Member 被 Hook 的成员
func (p *Param) Member() *member.Member { return p.frame.Member }

// Instance 方法接收者，构造函数为 nil
func (p *Param) Instance() any { return p.frame.Instance }

// Args 调用参数（不含接收者）
func (p *Param) Args() []any { return p.frame.Args }

// Arg 返回第 i 个参数，越界返回 nil
func (p *Param) Arg(i int) any {
	if i < 0 || i >= len(p.frame.Args) {
		return nil
	}
	return p.frame.Args[i]
}

// SetArg 修改第 i 个参数，只在 Before 中对原始函数体生效
func (p *Param) SetArg(i int, v any) {
	p.frame.Args[i] = v
}

// Result 当前返回值
func (p *Param) Result() any { return p.frame.Result() }

// SetResult 设置返回值；在 Before 中调用会跳过原始函数体
func (p *Param) SetResult(v any) { p.frame.SetResult(v) }

// Err 当前调用错误
func (p *Param) Err() error { return p.frame.Err() }

// SetErr 设置调用错误；在 Before 中调用会跳过原始函数体，
// 在替换回调中调用时作为调用的错误返回
func (p *Param) SetErr(err error) { p.frame.SetErr(err) }

// Field 读取接收者的字段（支持未导出字段，返回值只读）
func (p *Param) Field(name string) (reflect.Value, error) {
	v := reflect.ValueOf(p.frame.Instance)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("hook: field %q on nil instance", name)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("hook: instance %s has no fields", v.Kind())
	}
	f := v.FieldByName(name)
	if !f.IsValid() {
		return reflect.Value{}, fmt.Errorf("hook: field %q not found in %s", name, v.Type())
	}
	return f, nil
}

// ArgAs 以类型 T 读取第 i 个参数
func ArgAs[T any](p *Param, i int) (T, bool) {
	v, ok := p.Arg(i).(T)
	return v, ok
}

// InstanceAs 以类型 T 读取接收者
func InstanceAs[T any](p *Param) (T, bool) {
	v, ok := p.frame.Instance.(T)
	return v, ok
}
