package config

import (
	"fmt"
)

// Source 配置源接口
type Source interface {
	// Load 加载配置为嵌套映射
	Load() (map[string]any, error)
	// Name 配置源名称（用于错误消息）
	Name() string
}

// ConfigurationBuilder 配置构建器。
// 后添加的源覆盖先添加的源，惯用顺序：文件 < etcd < 环境变量。
type ConfigurationBuilder struct {
	sources []Source
}

// NewConfigurationBuilder 创建配置构建器
func NewConfigurationBuilder() *ConfigurationBuilder {
	return &ConfigurationBuilder{sources: make([]Source, 0)}
}

// Add 添加配置源
func (b *ConfigurationBuilder) Add(source Source) *ConfigurationBuilder {
	b.sources = append(b.sources, source)
	return b
}

// AddYAMLFile 添加 YAML 文件源。optional 为 true 时忽略文件不存在。
func (b *ConfigurationBuilder) AddYAMLFile(path string, optional bool) *ConfigurationBuilder {
	return b.Add(&yamlFileSource{path: path, optional: optional})
}

// AddEnvironment 添加环境变量源，prefix 如 "SHOP_"。
// SHOP_SERVER_PORT=8080 映射为 server:port。
func (b *ConfigurationBuilder) AddEnvironment(prefix string) *ConfigurationBuilder {
	return b.Add(&envSource{prefix: prefix})
}

// AddEtcd 添加 etcd 源：key 下存放一份 YAML 文档，用于集中式覆盖。
func (b *ConfigurationBuilder) AddEtcd(opts EtcdSourceOptions) *ConfigurationBuilder {
	return b.Add(&etcdSource{opts: opts})
}

// Build 加载并合并所有源，返回只读配置
func (b *ConfigurationBuilder) Build() (Configuration, error) {
	data := make(map[string]any)

	for _, source := range b.sources {
		layer, err := source.Load()
		if err != nil {
			return nil, fmt.Errorf("config: failed to load source '%s': %w", source.Name(), err)
		}
		merge(data, layer)
	}

	return &configuration{data: data}, nil
}
