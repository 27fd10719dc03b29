package config

import "time"

// SetDefaults sets default values for all configuration fields.
func SetDefaults(cfg *Config) {
	if cfg.Username.Base == "" {
		cfg.Username.Base = "spacetraders-bot"
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "spacetraders"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "spacetraders"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.spacetraders.io/v2"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.API.RateLimit.Requests == 0 {
		cfg.API.RateLimit.Requests = 2
	}
	if cfg.API.RateLimit.Burst == 0 {
		cfg.API.RateLimit.Burst = 10
	}
	if cfg.API.Retry.MaxAttempts == 0 {
		cfg.API.Retry.MaxAttempts = 3
	}
	if cfg.API.Retry.BackoffBase == 0 {
		cfg.API.Retry.BackoffBase = 1 * time.Second
	}

	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/spacetraders-daemon.pid"
	}
}
