package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocrud/shop/config"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestYAMLFileSource(t *testing.T) {
	path := writeYAML(t, `
server:
  port: 9090
logging:
  level: debug
  json: true
`)

	cfg, err := config.NewConfigurationBuilder().
		AddYAMLFile(path, false).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Get("server:port"))
	assert.Equal(t, "debug", cfg.Get("logging:level"))

	port, err := cfg.GetInt("server:port")
	require.NoError(t, err)
	assert.Equal(t, 9090, port)

	jsonOn, err := cfg.GetBool("logging:json")
	require.NoError(t, err)
	assert.True(t, jsonOn)
}

func TestMissingFileOptional(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	_, err := config.NewConfigurationBuilder().
		AddYAMLFile(missing, true).
		Build()
	assert.NoError(t, err)

	_, err = config.NewConfigurationBuilder().
		AddYAMLFile(missing, false).
		Build()
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeYAML(t, `
server:
  port: 8080
database:
  path: shop.db
`)

	t.Setenv("SHOPTEST_SERVER_PORT", "9999")

	cfg, err := config.NewConfigurationBuilder().
		AddYAMLFile(path, false).
		AddEnvironment("SHOPTEST_").
		Build()
	require.NoError(t, err)

	// 后加入的源优先
	port, err := cfg.GetInt("server:port")
	require.NoError(t, err)
	assert.Equal(t, 9999, port)

	// 未覆盖的键保持文件值
	assert.Equal(t, "shop.db", cfg.Get("database:path"))
}

func TestGetWithDefault(t *testing.T) {
	cfg, err := config.NewConfigurationBuilder().Build()
	require.NoError(t, err)

	assert.Equal(t, "fallback", cfg.GetWithDefault("missing:key", "fallback"))
}

func TestBindSection(t *testing.T) {
	path := writeYAML(t, `
redis:
  addr: redis.internal:6379
  db: 3
`)

	cfg, err := config.NewConfigurationBuilder().
		AddYAMLFile(path, false).
		Build()
	require.NoError(t, err)

	var target struct {
		Addr string `yaml:"addr"`
		DB   int    `yaml:"db"`
	}
	require.NoError(t, cfg.Bind("redis", &target))
	assert.Equal(t, "redis.internal:6379", target.Addr)
	assert.Equal(t, 3, target.DB)

	assert.Error(t, cfg.Bind("nope", &target))
}

func TestBindRootWithEnvOverride(t *testing.T) {
	path := writeYAML(t, `
server:
  port: 8080
`)

	t.Setenv("SHOPROOT_SERVER_PORT", "7070")

	cfg, err := config.NewConfigurationBuilder().
		AddYAMLFile(path, false).
		AddEnvironment("SHOPROOT_").
		Build()
	require.NoError(t, err)

	var target struct {
		Server struct {
			Port int `yaml:"port"`
		} `yaml:"server"`
	}
	require.NoError(t, cfg.Bind("", &target))
	assert.Equal(t, 7070, target.Server.Port)
}
