package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlFileSource YAML 文件配置源
type yamlFileSource struct {
	path     string
	optional bool
}

func (s *yamlFileSource) Name() string {
	return "yaml:" + s.path
}

func (s *yamlFileSource) Load() (map[string]any, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) && s.optional {
			return map[string]any{}, nil
		}
		return nil, err
	}

	data := make(map[string]any)
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return normalize(data), nil
}

// envSource 环境变量配置源。
// 前缀之后的下划线作为层级分隔符：SHOP_SERVER_PORT -> server:port。
type envSource struct {
	prefix string
}

func (s *envSource) Name() string {
	return "env:" + s.prefix
}

func (s *envSource) Load() (map[string]any, error) {
	data := make(map[string]any)

	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, s.prefix) {
			continue
		}

		path := strings.TrimPrefix(name, s.prefix)
		if path == "" {
			continue
		}
		key := strings.ToLower(strings.ReplaceAll(path, "_", KeyDelimiter))
		setPath(data, key, coerceScalar(value))
	}
	return data, nil
}

// coerceScalar 环境变量都是字符串，为了能绑定到 int/bool 字段，
// 按 YAML 标量规则尝试还原类型。
func coerceScalar(value string) any {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

// normalize 将 yaml 解析产生的 map[any]any 统一为 map[string]any
func normalize(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalize(t)
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprintf("%v", k)] = normalizeValue(val)
		}
		return m
	case []any:
		for i := range t {
			t[i] = normalizeValue(t[i])
		}
		return t
	default:
		return v
	}
}
