// README: Config loader: defaults, optional config.yaml, .env and TRIPMATE_* env overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "TRIPMATE"

type HTTPConfig struct {
	Addr           string        `mapstructure:"addr"`
	ReplyDelay     time.Duration `mapstructure:"reply_delay"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

type Config struct {
	HTTP  HTTPConfig `mapstructure:"http"`
	Redis struct {
		// Addr empty disables the session store.
		Addr       string        `mapstructure:"addr"`
		SessionTTL time.Duration `mapstructure:"session_ttl"`
	} `mapstructure:"redis"`
	DB struct {
		// DSN empty disables the transcript store.
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.reply_delay", "0s")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("http.rate_limit_rps", 10)
	v.SetDefault("http.rate_limit_burst", 20)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.session_ttl", "24h")
	v.SetDefault("db.dsn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads configuration in increasing precedence: defaults, config.yaml
// from ./configs or the working directory, then the environment (a .env
// file is loaded into it first when present).
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.HTTP.ReplyDelay < 0 {
		return errors.New("http.reply_delay must not be negative")
	}
	if c.HTTP.RateLimitRPS <= 0 || c.HTTP.RateLimitBurst <= 0 {
		return errors.New("http.rate_limit_rps and http.rate_limit_burst must be positive")
	}
	if c.Redis.SessionTTL <= 0 {
		return errors.New("redis.session_ttl must be positive")
	}
	return nil
}
