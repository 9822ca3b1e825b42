package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Terminal TerminalConfig `mapstructure:"terminal"`
	Startup  StartupConfig  `mapstructure:"startup"`
	Log      LogConfig      `mapstructure:"log"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
}

// TerminalConfig describes how to reach the terminal bridge.
type TerminalConfig struct {
	WS   WSConfig   `mapstructure:"ws"`
	REST RESTConfig `mapstructure:"rest"`

	Path     string        `mapstructure:"path"`     // terminal executable path on the bridge host (optional)
	Login    int64         `mapstructure:"login"`    // trading account number (0 = last used account)
	Password string        `mapstructure:"password"` // trading account password
	Server   string        `mapstructure:"server"`   // trade server name
	Timeout  time.Duration `mapstructure:"timeout"`  // connection timeout handed to the terminal
	Portable bool          `mapstructure:"portable"` // launch the terminal in portable mode
}

type WSConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RESTConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StartupConfig carries the tick request made by the startup routine.
type StartupConfig struct {
	Symbol string `mapstructure:"symbol"`
	Count  int    `mapstructure:"count"`
	Flags  string `mapstructure:"flags"` // "all", "info" or "trade"
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// ArchiveConfig toggles persisting fetched ticks to Postgres.
type ArchiveConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	CreateDB bool `mapstructure:"create_db"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("terminal.ws.url", "ws://127.0.0.1:8765/v1/session")
	v.SetDefault("terminal.ws.timeout", 10*time.Second)
	v.SetDefault("terminal.rest.base_url", "http://127.0.0.1:8765")
	v.SetDefault("terminal.rest.timeout", 10*time.Second)
	v.SetDefault("terminal.path", "")
	v.SetDefault("terminal.login", 0)
	v.SetDefault("terminal.password", "")
	v.SetDefault("terminal.server", "")
	v.SetDefault("terminal.timeout", 60*time.Second)
	v.SetDefault("terminal.portable", false)

	v.SetDefault("startup.symbol", "EURUSD")
	v.SetDefault("startup.count", 10)
	v.SetDefault("startup.flags", "all")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "dev")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "tickprobe")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timezone", "UTC")
	v.SetDefault("postgres.max_open_conns", 0)
	v.SetDefault("postgres.max_idle_conns", 0)
	v.SetDefault("postgres.conn_max_lifetime", time.Duration(0))

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.create_db", false)
}

// Load loads application configuration using Viper.
// It reads config.yaml when present and overrides with environment variables.
func Load() *Config {
	var paths []string
	ex, _ := os.Executable()
	if strings.Contains(ex, "go-build") {
		pwd, _ := os.Getwd()
		paths = append(paths, filepath.Join(pwd, "../../config"))
	} else {
		paths = append(paths, filepath.Join(filepath.Dir(ex), "../config"))
	}
	paths = append(paths, "./config", ".")

	cfg, err := LoadFrom(paths...)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// LoadFrom reads config.yaml from the first search path that has one.
// A missing file is not an error: defaults and environment still apply.
func LoadFrom(paths ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	setDefaults(v)

	// Support environment variables with dot notation (e.g., TERMINAL_WS_URL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
