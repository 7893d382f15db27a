package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "tcp", cfg.Server.Mode)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DBModeMemory, cfg.DB.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
	assert.Empty(t, cfg.Auth.HMACSecret)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 256, cfg.Index.QueueSize)
	assert.Equal(t, 1, cfg.Index.Workers)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DOCSERVER_SERVER_PORT", "9090")
	t.Setenv("DOCSERVER_LOG_FORMAT", "text")
	t.Setenv("DOCSERVER_REDIS_ADDR", "localhost:6379")
	t.Setenv("DOCSERVER_AUTH_HMAC_SECRET", "s3cret")

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, LogFormatText, cfg.Log.Format)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "s3cret", cfg.Auth.HMACSecret)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  mode: uds
  socket_path: /tmp/docserver-test.socket
db:
  mode: local
  path: `+dir+`
  name: notes
index:
  queue_size: 32
`), 0o600))

	v := NewViper()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "uds", cfg.Server.Mode)
	assert.Equal(t, "/tmp/docserver-test.socket", cfg.Server.SocketPath)
	assert.Equal(t, DBConfig{Mode: DBModeLocal, Path: dir, Name: "notes"}, cfg.DB)
	assert.Equal(t, 32, cfg.Index.QueueSize)
}

func TestReadFileMissing(t *testing.T) {
	v := NewViper()
	require.NoError(t, ReadFile(v, filepath.Join(t.TempDir(), "missing.yaml")))
	require.NoError(t, ReadFile(v, ""))
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Mode: "tcp", Port: 8080},
			DB:     DBConfig{Mode: DBModeMemory},
			Log:    LogConfig{Level: "info", Format: LogFormatJSON},
			Redis:  RedisConfig{Channel: "docserver:documents"},
			Index:  IndexConfig{QueueSize: 1, Workers: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad server mode", mutate: func(c *Config) { c.Server.Mode = "pipe" }, wantErr: "server.mode"},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server.port"},
		{name: "bad db mode", mutate: func(c *Config) { c.DB.Mode = "postgres" }, wantErr: "db.mode"},
		{name: "local without name", mutate: func(c *Config) { c.DB = DBConfig{Mode: DBModeLocal, Path: "/tmp"} }, wantErr: "db.name"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log.level"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "redis without channel", mutate: func(c *Config) { c.Redis = RedisConfig{Addr: "localhost:6379"} }, wantErr: "redis.channel"},
		{name: "zero queue", mutate: func(c *Config) { c.Index.QueueSize = 0 }, wantErr: "index.queue_size"},
		{name: "zero workers", mutate: func(c *Config) { c.Index.Workers = 0 }, wantErr: "index.workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := LogConfig{Level: "warn", Format: LogFormatJSON}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "document_id", "abc")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"document_id":"abc"`)

	buf.Reset()
	logger, err = LogConfig{Level: "debug", Format: LogFormatText}.NewLogger(&buf)
	require.NoError(t, err)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}
