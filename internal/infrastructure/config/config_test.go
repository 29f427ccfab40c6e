package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenExpire)
	assert.Equal(t, "bookcatalog.events", cfg.MQ.Exchange)
	assert.False(t, cfg.MQ.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadFrom_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml", `
server:
  port: 9090
  mode: test
database:
  host: db.internal
  dbname: catalog
log:
  level: debug
`)
	t.Setenv("BOOKCATALOG_DATABASE_PASSWORD", "s3cret")
	t.Setenv("BOOKCATALOG_MQ_ENABLED", "true")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.True(t, cfg.MQ.Enabled)
	assert.Contains(t, cfg.Database.DSN(), "db.internal:3306)/catalog")
}

func TestLoadFrom_EnvSpecificFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.staging.yaml", "server:\n  port: 7070\n")
	t.Setenv("BOOKCATALOG_ENV", "staging")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	t.Run("生产环境必须修改JWT密钥", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "config.yaml", "server:\n  mode: release\n")

		_, err := LoadFrom(dir)
		assert.Error(t, err)
	})

	t.Run("端口越界", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "config.yaml", "server:\n  port: 70000\n")

		_, err := LoadFrom(dir)
		assert.Error(t, err)
	})

	t.Run("日志级别非法", func(t *testing.T) {
		t.Setenv("BOOKCATALOG_LOG_LEVEL", "verbose")

		_, err := LoadFrom(t.TempDir())
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		User: "root", Password: "pw", Host: "localhost", Port: 3306,
		DBName: "bookcatalog", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t,
		"root:pw@tcp(localhost:3306)/bookcatalog?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.DSN())
}
