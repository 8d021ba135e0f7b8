// Package member 描述可被 Hook 的类与成员（方法、构造函数）。
//
// Go 没有真正意义上的构造函数，这里把返回类实例的工厂函数注册为构造函数，
// 方法则通过反射从类型的方法集中获取。
package member

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Kind 成员类型
type Kind int

const (
	KindMethod Kind = iota
	KindConstructor
)

// String 返回成员类型的字符串表示
func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	default:
		return "unknown"
	}
}

// Class 可被 Hook 的类
type Class struct {
	Name string
	Type reflect.Type

	constructors []*Member
}

// NewClass 创建类描述
// name 为空时使用类型名称
func NewClass(name string, typ reflect.Type) *Class {
	if name == "" && typ != nil {
		name = typ.String()
	}
	return &Class{Name: name, Type: typ}
}

// ClassOf 泛型辅助函数，从类型参数创建类描述
//
// 示例：
//
//	class := member.ClassOf[*UserService]()
func ClassOf[T any]() *Class {
	return NewClass("", reflect.TypeOf((*T)(nil)).Elem())
}

// WithConstructor 注册构造函数
// fn 必须是函数，且第一个返回值为该类的类型
func (c *Class) WithConstructor(name string, fn any) *Class {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic(fmt.Sprintf("member: constructor %q of %s must be a func, got %T", name, c.Name, fn))
	}
	if v.Type().NumOut() == 0 || (c.Type != nil && !v.Type().Out(0).AssignableTo(c.Type)) {
		panic(fmt.Sprintf("member: constructor %q must return %s first", name, c.Name))
	}
	c.constructors = append(c.constructors, &Member{
		Class: c,
		Name:  name,
		Kind:  KindConstructor,
		Func:  v,
	})
	return c
}

// String 返回类名
func (c *Class) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.Name
}

// Methods 返回类的全部导出方法，按名称排序
// 方法的 Func 第一个参数为接收者
func (c *Class) Methods() []*Member {
	if c == nil || c.Type == nil {
		return nil
	}
	n := c.Type.NumMethod()
	methods := make([]*Member, 0, n)
	for i := 0; i < n; i++ {
		m := c.Type.Method(i)
		// 接口类型的方法没有可调用的实现
		if !m.Func.IsValid() {
			continue
		}
		methods = append(methods, &Member{
			Class: c,
			Name:  m.Name,
			Kind:  KindMethod,
			Func:  m.Func,
		})
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })
	return methods
}

// Constructors 返回已注册的构造函数
func (c *Class) Constructors() []*Member {
	if c == nil {
		return nil
	}
	return append([]*Member(nil), c.constructors...)
}

// Member 已解析的可执行成员
type Member struct {
	Class *Class
	Name  string
	Kind  Kind
	Func  reflect.Value
}

// Key 成员标识，同一类型上同名同种类的成员 Key 相等
type Key struct {
	Class string
	Type  reflect.Type
	Name  string
	Kind  Kind
}

// Key 返回成员标识
func (m *Member) Key() Key {
	if m == nil {
		return Key{}
	}
	k := Key{Name: m.Name, Kind: m.Kind}
	if m.Class != nil {
		k.Class, k.Type = m.Class.Name, m.Class.Type
	}
	return k
}

// Type 返回成员的函数类型
func (m *Member) Type() reflect.Type {
	if m == nil || !m.Func.IsValid() {
		return nil
	}
	return m.Func.Type()
}

// Params 返回参数类型（方法不包含接收者）
func (m *Member) Params() []reflect.Type {
	typ := m.Type()
	if typ == nil {
		return nil
	}
	start := 0
	if m.Kind == KindMethod {
		start = 1
	}
	params := make([]reflect.Type, 0, typ.NumIn())
	for i := start; i < typ.NumIn(); i++ {
		params = append(params, typ.In(i))
	}
	return params
}

// Results 返回返回值类型
func (m *Member) Results() []reflect.Type {
	typ := m.Type()
	if typ == nil {
		return nil
	}
	results := make([]reflect.Type, 0, typ.NumOut())
	for i := 0; i < typ.NumOut(); i++ {
		results = append(results, typ.Out(i))
	}
	return results
}

// String 返回成员签名，如 "*pkg.User.Rename(string) error"
func (m *Member) String() string {
	if m == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(m.Class.String())
	b.WriteByte('.')
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, p := range m.Params() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	results := m.Results()
	switch len(results) {
	case 0:
	case 1:
		b.WriteByte(' ')
		b.WriteString(results[0].String())
	default:
		b.WriteString(" (")
		for i, r := range results {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(r.String())
		}
		b.WriteByte(')')
	}
	return b.String()
}
