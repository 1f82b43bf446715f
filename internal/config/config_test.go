package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"respclient/pkg/connection"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, connection.Endpoint{
		Host:           "127.0.0.1",
		Port:           6379,
		ConnectTimeout: 5 * time.Second,
	}, cfg.Endpoint())
	assert.Equal(t, "127.0.0.1:6379", cfg.ServeAddr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "respclient", cfg.Log.Name)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "respclient.yaml")
	writeFile(t, path, `
host: 10.0.0.7
port: 6380
connectTimeout: 250ms
log:
  level: debug
  path: /tmp/respclient-logs
`)

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", cfg.Host)
	assert.Equal(t, 6380, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.ConnectTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/respclient-logs", cfg.Log.Path)
	// 文件中没有的键仍取默认值
	assert.Equal(t, "log", cfg.Log.Ext)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("RESPCLIENT_PORT", "7000")
	t.Setenv("RESPCLIENT_LOG_LEVEL", "error")

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(NewViper(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "port: 70000\n")
	_, err = Load(NewViper(), bad)
	assert.ErrorContains(t, err, "out of range")

	neg := filepath.Join(dir, "neg.yaml")
	writeFile(t, neg, "connectTimeout: -1s\n")
	_, err = Load(NewViper(), neg)
	assert.ErrorContains(t, err, "negative")

	empty := filepath.Join(dir, "empty.yaml")
	writeFile(t, empty, "host: \"\"\n")
	_, err = Load(NewViper(), empty)
	assert.ErrorContains(t, err, "host is empty")
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "respclient.yaml")
	writeFile(t, path, "port: 6380\n")

	v := NewViper()
	_, err := Load(v, path)
	require.NoError(t, err)

	var (
		mu   sync.Mutex
		port int
	)
	Watch(v, func(cfg *Config, err error) {
		if err != nil {
			return
		}
		mu.Lock()
		port = cfg.Port
		mu.Unlock()
	})

	writeFile(t, path, "port: 6381\n")
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return port == 6381
	}, 5*time.Second, 20*time.Millisecond)
}
