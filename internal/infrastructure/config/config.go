package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/ba6/gatekeeper/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server"`
	Database   sharedConfig.DatabaseConfig   `mapstructure:"database"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Supabase   sharedConfig.SupabaseConfig   `mapstructure:"supabase"`
	Billing    sharedConfig.BillingConfig    `mapstructure:"billing"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	RateLimit  sharedConfig.RateLimitConfig  `mapstructure:"ratelimit"`
	Permission sharedConfig.PermissionConfig `mapstructure:"permission"`
	Shutdown   sharedConfig.ShutdownConfig   `mapstructure:"shutdown"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// A missing config file is not an error: defaults and GATEKEEPER_* variables still apply.
func Load(env string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("GATEKEEPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{})

	// Database defaults (Supabase session pooler)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.database", "postgres")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", 30)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Supabase defaults
	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.jwt_secret", "")
	v.SetDefault("supabase.audience", "authenticated")

	// Billing defaults (Stripe Sync Engine layout)
	v.SetDefault("billing.schema", "stripe")
	v.SetDefault("billing.customer_metadata_key", "user_id")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Rate limit defaults for action endpoints
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 30)
	v.SetDefault("ratelimit.requests_per_hour", 600)
	v.SetDefault("ratelimit.requests_per_day", 0)

	// Permission defaults
	v.SetDefault("permission.model_path", "")
	v.SetDefault("permission.admin_user_ids", []string{})

	v.SetDefault("shutdown.timeout", "30s")
}
