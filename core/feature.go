package core

import (
	"reflect"
	"sync"
)

// FeatureCollection 是一个类型安全的特性集合
// 用于在模块之间共享对象，如状态读取器
type FeatureCollection struct {
	features sync.Map
}

// Set 注册一个特性，同类型的特性会被替换
func (fc *FeatureCollection) Set(feature any) {
	fc.features.Store(reflect.TypeOf(feature), feature)
}

// Get 获取一个特性
func (fc *FeatureCollection) Get(typ reflect.Type) (any, bool) {
	return fc.features.Load(typ)
}

// GetFeature 泛型辅助函数，从 Runtime 获取特性
func GetFeature[T any](rt *Runtime) (T, bool) {
	var zero T
	// T 为接口时 reflect.TypeOf(zero) 是 nil，需要从指针取 Elem
	targetType := reflect.TypeOf((*T)(nil)).Elem()

	if val, ok := rt.Features.Get(targetType); ok {
		return val.(T), true
	}
	return zero, false
}
