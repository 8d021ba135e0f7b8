package config

import (
	"sync/atomic"
)

// ValueStore 保存配置快照，读取无锁
// 快照一经存入不再修改，更新时整体替换
type ValueStore struct {
	snapshot atomic.Pointer[map[string]any]
}

// NewValueStore 创建空的 ValueStore
func NewValueStore() *ValueStore {
	s := &ValueStore{}
	s.Store(make(map[string]any))
	return s
}

// Load 返回当前快照
func (s *ValueStore) Load() map[string]any {
	if p := s.snapshot.Load(); p != nil {
		return *p
	}
	return nil
}

// Store 替换快照，返回旧快照
func (s *ValueStore) Store(data map[string]any) map[string]any {
	if old := s.snapshot.Swap(&data); old != nil {
		return *old
	}
	return nil
}
