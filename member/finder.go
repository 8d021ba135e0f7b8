package member

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrNotFound 没有匹配条件的成员
	ErrNotFound = errors.New("member: not found")
	// ErrAmbiguous 匹配到多个成员
	ErrAmbiguous = errors.New("member: ambiguous")
)

// Locator 成员定位器
// 根据类与匹配条件返回唯一的成员
type Locator interface {
	Locate(class *Class) (*Member, error)
}

// LocatorFunc 函数适配器
type LocatorFunc func(class *Class) (*Member, error)

// Locate 实现 Locator 接口
func (f LocatorFunc) Locate(class *Class) (*Member, error) { return f(class) }

// AnyParams 表示不限制参数数量
const AnyParams = -1

// MethodFinder 方法查找条件
//
// Name 支持 glob 模式（如 "Get*"、"{Is,Has}Active"）。
// Params 非 nil 时要求参数类型完全一致；ParamCount 为 AnyParams 时不限制数量。
type MethodFinder struct {
	Name       string
	Params     []reflect.Type
	ParamCount int
	Returns    reflect.Type
}

// NewMethodFinder 创建方法查找条件
func NewMethodFinder(name string) *MethodFinder {
	return &MethodFinder{Name: name, ParamCount: AnyParams}
}

// Param 设置参数类型（链式）
func (f *MethodFinder) Param(types ...reflect.Type) *MethodFinder {
	f.Params = types
	return f
}

// ReturnType 设置返回值类型（链式）
func (f *MethodFinder) ReturnType(typ reflect.Type) *MethodFinder {
	f.Returns = typ
	return f
}

// Locate 实现 Locator 接口
func (f *MethodFinder) Locate(class *Class) (*Member, error) {
	if class == nil {
		return nil, fmt.Errorf("%w: method %q in nil class", ErrNotFound, f.Name)
	}
	candidates, err := filter(class.Methods(), f.Name, f.Params, f.ParamCount, func(m *Member) bool {
		if f.Returns == nil {
			return true
		}
		results := m.Results()
		return len(results) > 0 && results[0] == f.Returns
	})
	if err != nil {
		return nil, err
	}
	return pick(candidates, "method", f.Name, class)
}

// ConstructorFinder 构造函数查找条件
// Name 为空时匹配全部已注册构造函数
type ConstructorFinder struct {
	Name       string
	Params     []reflect.Type
	ParamCount int
}

// NewConstructorFinder 创建构造函数查找条件
func NewConstructorFinder() *ConstructorFinder {
	return &ConstructorFinder{ParamCount: AnyParams}
}

// Param 设置参数类型（链式）
func (f *ConstructorFinder) Param(types ...reflect.Type) *ConstructorFinder {
	f.Params = types
	return f
}

// Locate 实现 Locator 接口
func (f *ConstructorFinder) Locate(class *Class) (*Member, error) {
	if class == nil {
		return nil, fmt.Errorf("%w: constructor in nil class", ErrNotFound)
	}
	pattern := f.Name
	if pattern == "" {
		pattern = "*"
	}
	candidates, err := filter(class.Constructors(), pattern, f.Params, f.ParamCount, nil)
	if err != nil {
		return nil, err
	}
	return pick(candidates, "constructor", pattern, class)
}

func filter(members []*Member, pattern string, params []reflect.Type, count int, extra func(*Member) bool) ([]*Member, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("member: invalid name pattern %q", pattern)
	}
	matched := make([]*Member, 0, 1)
	for _, m := range members {
		if pattern != "" {
			ok, err := doublestar.Match(pattern, m.Name)
			if err != nil {
				return nil, fmt.Errorf("member: match %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
		}
		got := m.Params()
		if count != AnyParams && len(got) != count {
			continue
		}
		if params != nil && !sameTypes(got, params) {
			continue
		}
		if extra != nil && !extra(m) {
			continue
		}
		matched = append(matched, m)
	}
	return matched, nil
}

func pick(candidates []*Member, kind, pattern string, class *Class) (*Member, error) {
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: %s %q in class [%s]", ErrNotFound, kind, pattern, class)
	case 1:
		return candidates[0], nil
	default:
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			names = append(names, c.String())
		}
		return nil, fmt.Errorf("%w: %s %q in class [%s] matches %s", ErrAmbiguous, kind, pattern, class, strings.Join(names, ", "))
	}
}

func sameTypes(a, b []reflect.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
