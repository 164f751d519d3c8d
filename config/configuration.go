package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeyDelimiter 配置键的层级分隔符，如 "server:port"。
const KeyDelimiter = ":"

// Configuration 配置接口
type Configuration interface {
	// Get 获取配置值，不存在时返回空字符串
	Get(key string) string
	// GetWithDefault 获取配置值，如果不存在则返回默认值
	GetWithDefault(key, defaultValue string) string
	// GetInt 获取整数配置值
	GetInt(key string) (int, error)
	// GetBool 获取布尔配置值
	GetBool(key string) (bool, error)
	// Bind 将配置节绑定到结构体（yaml 标签）
	Bind(key string, target any) error
}

// configuration 基于合并后的嵌套映射的实现
type configuration struct {
	data map[string]any
}

// Get 获取配置值
func (c *configuration) Get(key string) string {
	v, ok := c.lookup(key)
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// GetWithDefault 获取配置值，如果不存在则返回默认值
func (c *configuration) GetWithDefault(key, defaultValue string) string {
	if v, ok := c.lookup(key); ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return defaultValue
}

// GetInt 获取整数配置值
func (c *configuration) GetInt(key string) (int, error) {
	v, ok := c.lookup(key)
	if !ok {
		return 0, fmt.Errorf("config: key '%s' not found", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("config: key '%s' is not an integer: %v", key, v)
	}
}

// GetBool 获取布尔配置值
func (c *configuration) GetBool(key string) (bool, error) {
	v, ok := c.lookup(key)
	if !ok {
		return false, fmt.Errorf("config: key '%s' not found", key)
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(b)
	default:
		return false, fmt.Errorf("config: key '%s' is not a boolean: %v", key, v)
	}
}

// Bind 将配置节绑定到结构体。
// 通过 yaml 往返实现，目标结构体使用 yaml 标签。
func (c *configuration) Bind(key string, target any) error {
	var node any = c.data
	if key != "" {
		v, ok := c.lookup(key)
		if !ok {
			return fmt.Errorf("config: section '%s' not found", key)
		}
		node = v
	}

	raw, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("config: failed to marshal section '%s': %w", key, err)
	}
	if err := yaml.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("config: failed to bind section '%s': %w", key, err)
	}
	return nil
}

// lookup 按 ":" 分隔的路径向下导航
func (c *configuration) lookup(key string) (any, bool) {
	parts := strings.Split(key, KeyDelimiter)
	var current any = c.data

	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// merge 递归合并 src 到 dst，src 的值优先
func merge(dst, src map[string]any) {
	for k, v := range src {
		if srcMap, ok := v.(map[string]any); ok {
			if dstMap, ok := dst[k].(map[string]any); ok {
				merge(dstMap, srcMap)
				continue
			}
		}
		dst[k] = v
	}
}

// setPath 在嵌套映射中写入一条 ":" 路径的值
func setPath(dst map[string]any, key string, value any) {
	parts := strings.Split(key, KeyDelimiter)
	current := dst
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
