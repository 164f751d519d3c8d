package config

import (
	"context"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
	"gopkg.in/yaml.v3"
)

// EtcdSourceOptions etcd 配置源选项
type EtcdSourceOptions struct {
	Endpoints   []string      // etcd 服务器地址列表
	Key         string        // 存放 YAML 文档的键，如 "/shop/config"
	Username    string        // 用户名（可选）
	Password    string        // 密码（可选）
	DialTimeout time.Duration // 连接超时时间
	Optional    bool          // 为 true 时键不存在不视为错误
}

// Validate 验证配置
func (o *EtcdSourceOptions) Validate() error {
	if len(o.Endpoints) == 0 {
		return fmt.Errorf("etcd endpoints are required")
	}
	if o.Key == "" {
		return fmt.Errorf("etcd config key is required")
	}
	if o.DialTimeout <= 0 {
		o.DialTimeout = 5 * time.Second
	}
	return nil
}

// etcdSource 从 etcd 读取集中式配置覆盖。
// 键下存放一份完整的 YAML 文档，Load 时取一次快照。
type etcdSource struct {
	opts EtcdSourceOptions
}

func (s *etcdSource) Name() string {
	return "etcd:" + s.opts.Key
}

func (s *etcdSource) Load() (map[string]any, error) {
	if err := s.opts.Validate(); err != nil {
		return nil, err
	}

	client, err := clientv3.New(clientv3.Config{
		Endpoints:   s.opts.Endpoints,
		DialTimeout: s.opts.DialTimeout,
		Username:    s.opts.Username,
		Password:    s.opts.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.DialTimeout)
	defer cancel()

	resp, err := client.Get(ctx, s.opts.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read key '%s': %w", s.opts.Key, err)
	}

	if len(resp.Kvs) == 0 {
		if s.opts.Optional {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("key '%s' not found", s.opts.Key)
	}

	data := make(map[string]any)
	if err := yaml.Unmarshal(resp.Kvs[0].Value, &data); err != nil {
		return nil, fmt.Errorf("invalid yaml in key '%s': %w", s.opts.Key, err)
	}
	return normalize(data), nil
}
