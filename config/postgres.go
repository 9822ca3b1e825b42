package config

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Parameter Store names read in the prod environment.
const (
	ParamDBHost           = "TICKPROBE_DB_HOST"
	ParamDBUser           = "TICKPROBE_DB_USER"
	ParamDBPassword       = "TICKPROBE_DB_PASSWORD"
	ParamTerminalPassword = "TICKPROBE_TERMINAL_PASSWORD"
)

// PostgresConfig defines the configuration for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// ParameterFunc resolves a named secret. It returns "" when the value is unavailable.
type ParameterFunc func(name string) string

// DSN builds the connection string. In prod the host and credentials come from
// Parameter Store instead of the config file.
func (cfg *PostgresConfig) DSN(env string) string {
	return cfg.dsn(env, cfg.DBName, getParameterStoreValue)
}

// AdminDSN points at the default "postgres" database, used to create cfg.DBName.
func (cfg *PostgresConfig) AdminDSN(env string) string {
	return cfg.dsn(env, "postgres", getParameterStoreValue)
}

func (cfg *PostgresConfig) dsn(env, dbName string, param ParameterFunc) string {
	host, user, password := cfg.Host, cfg.User, cfg.Password
	if env == "prod" {
		host = param(ParamDBHost)
		user = param(ParamDBUser)
		password = param(ParamDBPassword)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, cfg.Port, user, password, dbName, cfg.SSLMode,
	)

	if cfg.TimeZone != "" {
		dsn += fmt.Sprintf(" TimeZone=%s", cfg.TimeZone)
	}

	return dsn
}

// ResolveSecrets fills the terminal password from Parameter Store in prod
// when the config file leaves it empty.
func (c *Config) ResolveSecrets() {
	c.resolveSecrets(getParameterStoreValue)
}

func (c *Config) resolveSecrets(param ParameterFunc) {
	if c.Log.Environment != "prod" || c.Terminal.Password != "" {
		return
	}
	c.Terminal.Password = param(ParamTerminalPassword)
}

func getParameterStoreValue(parameterName string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return ""
	}

	client := ssm.NewFromConfig(cfg)

	decrypt := true
	input := &ssm.GetParameterInput{
		Name:           &parameterName,
		WithDecryption: &decrypt,
	}

	result, err := client.GetParameter(ctx, input)
	if err != nil {
		return ""
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return ""
	}

	return *result.Parameter.Value
}
