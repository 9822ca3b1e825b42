package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -v --run TestLoadFromDefaults
func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "EURUSD", cfg.Startup.Symbol)
	assert.Equal(t, 10, cfg.Startup.Count)
	assert.Equal(t, "all", cfg.Startup.Flags)
	assert.Equal(t, 10*time.Second, cfg.Terminal.REST.Timeout)
	assert.False(t, cfg.Archive.Enabled)
}

// go test -v --run TestLoadFromFile
func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
terminal:
  ws:
    url: "ws://bridge:9000/v1/session"
  login: 5012345
  server: "Demo-Server"
startup:
  symbol: "GBPUSD"
  count: 25
log:
  level: "debug"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "ws://bridge:9000/v1/session", cfg.Terminal.WS.URL)
	assert.Equal(t, int64(5012345), cfg.Terminal.Login)
	assert.Equal(t, "Demo-Server", cfg.Terminal.Server)
	assert.Equal(t, "GBPUSD", cfg.Startup.Symbol)
	assert.Equal(t, 25, cfg.Startup.Count)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched keys keep defaults
	assert.Equal(t, "all", cfg.Startup.Flags)
}

// go test -v --run TestLoadFromEnv
func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STARTUP_SYMBOL", "USDJPY")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "USDJPY", cfg.Startup.Symbol)
}

// go test -v --run TestLoadFromEnvWithoutDefaults
func TestLoadFromEnvWithoutDefaults(t *testing.T) {
	t.Setenv("TERMINAL_PASSWORD", "s3cret")
	t.Setenv("TERMINAL_LOGIN", "5012345")
	t.Setenv("TERMINAL_SERVER", "Demo-Server")
	t.Setenv("TERMINAL_WS_URL", "ws://bridge:1/x")
	t.Setenv("POSTGRES_USER", "svc")
	t.Setenv("POSTGRES_PASSWORD", "pgpw")
	t.Setenv("ARCHIVE_CREATE_DB", "true")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Terminal.Password)
	assert.Equal(t, int64(5012345), cfg.Terminal.Login)
	assert.Equal(t, "Demo-Server", cfg.Terminal.Server)
	assert.Equal(t, "ws://bridge:1/x", cfg.Terminal.WS.URL)
	assert.Equal(t, "svc", cfg.Postgres.User)
	assert.Equal(t, "pgpw", cfg.Postgres.Password)
	assert.True(t, cfg.Archive.CreateDB)
}

// go test -v --run TestLoadFromBadYAML
func TestLoadFromBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("startup: [oops"), 0o644))

	_, err := LoadFrom(dir)
	assert.Error(t, err)
}

// go test -v --run TestPostgresDSN
func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "pw",
		DBName:   "tickprobe",
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=tickprobe sslmode=disable TimeZone=UTC",
		cfg.DSN("dev"))

	params := map[string]string{
		ParamDBHost:     "db.internal",
		ParamDBUser:     "svc",
		ParamDBPassword: "secret",
	}
	lookup := func(name string) string { return params[name] }

	assert.Equal(t,
		"host=db.internal port=5432 user=svc password=secret dbname=postgres sslmode=disable TimeZone=UTC",
		cfg.dsn("prod", "postgres", lookup))
}

// go test -v --run TestResolveSecrets
func TestResolveSecrets(t *testing.T) {
	lookup := func(name string) string {
		if name == ParamTerminalPassword {
			return "from-ssm"
		}
		return ""
	}

	dev := &Config{Log: LogConfig{Environment: "dev"}}
	dev.resolveSecrets(lookup)
	assert.Empty(t, dev.Terminal.Password)

	prod := &Config{Log: LogConfig{Environment: "prod"}}
	prod.resolveSecrets(lookup)
	assert.Equal(t, "from-ssm", prod.Terminal.Password)

	explicit := &Config{Log: LogConfig{Environment: "prod"}, Terminal: TerminalConfig{Password: "file"}}
	explicit.resolveSecrets(lookup)
	assert.Equal(t, "file", explicit.Terminal.Password)
}
