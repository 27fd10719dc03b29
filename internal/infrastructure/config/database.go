package config

import "time"

// DatabaseConfig holds the POSTGRES_* connection fields spec.md §6 names,
// plus a sqlite escape hatch kept purely for fast local/unit tests.
type DatabaseConfig struct {
	// Connection type: "postgres" or "sqlite"
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// PostgreSQL connection fields
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// SQLite connection field, test-only
	Path string `mapstructure:"path"`

	// Connection pool settings
	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig holds connection pool configuration.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
