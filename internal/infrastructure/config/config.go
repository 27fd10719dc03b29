package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct, realizing spec.md §6's flat
// variable list as typed substructs.
type Config struct {
	Username  UsernameConfig `mapstructure:"username"`
	Database  DatabaseConfig `mapstructure:"database"`
	Features  FeaturesConfig `mapstructure:"features"`
	API       APIConfig      `mapstructure:"api"`
	Metrics   MetricsConfig  `mapstructure:"metrics"`
	Daemon    DaemonConfig   `mapstructure:"daemon"`
	HTTPProxy string         `mapstructure:"http_proxy"`
}

// UsernameConfig holds the USERNAME_BASE prefix spec.md §6 describes, used
// to derive auto-generated scout/trader account names.
type UsernameConfig struct {
	Base string `mapstructure:"base" validate:"required"`
}

// FeaturesConfig holds the three boolean toggles spec.md §6 enumerates.
type FeaturesConfig struct {
	EnableScouts bool `mapstructure:"enable_scouts"`
	EnableTrader bool `mapstructure:"enable_trader"`
	EnableReset  bool `mapstructure:"enable_reset"`
}

// envBindings maps each mapstructure key path to the literal environment
// variable spec.md §6 names, bypassing viper's ST_ prefix convention for
// these specific vars since the spec fixes their exact names.
var envBindings = map[string]string{
	"username.base":          "USERNAME_BASE",
	"database.host":          "POSTGRES_HOST",
	"database.port":          "POSTGRES_PORT",
	"database.user":          "POSTGRES_USERNAME",
	"database.password":      "POSTGRES_PASSWORD",
	"database.name":          "POSTGRES_DATABASE",
	"features.enable_scouts": "ENABLE_SCOUTS",
	"features.enable_trader": "ENABLE_TRADER",
	"features.enable_reset":  "ENABLE_RESET",
	"http_proxy":             "HTTP_PROXY",
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/spacetraders")
	}

	v.SetEnvPrefix("ST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind env var %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadConfigOrDefault loads configuration or returns a default config on error.
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		defaultCfg := &Config{}
		SetDefaults(defaultCfg)
		return defaultCfg
	}
	return cfg
}

// MustLoadConfig loads configuration and panics on error (for use in main.go).
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
