package config

import (
	"strings"
	"sync"
)

// PathCache 缓存配置路径的解析结果
// "hook:logLevel" 与 "hook.logLevel" 解析为相同的片段
type PathCache struct {
	cache sync.Map
}

// GetPathSegments 返回路径片段，空片段会被忽略
func (c *PathCache) GetPathSegments(path string) []string {
	if v, ok := c.cache.Load(path); ok {
		return v.([]string)
	}

	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == ':' || r == '.'
	})
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	c.cache.Store(path, parts)
	return parts
}

var globalPathCache = &PathCache{}
