// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package config

import (
	"fmt"
	"time"

	"github.com/veiltrics/veiltrics/internal/validation"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Warehouse WarehouseConfig `koanf:"warehouse"`
	Registry  RegistryConfig  `koanf:"registry"`
	Geo       GeoConfig       `koanf:"geo"`
	Delivery  DeliveryConfig  `koanf:"delivery"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// WarehouseConfig configures the analytics warehouse client.
type WarehouseConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	Token   string `koanf:"token" validate:"required"`
}

// RegistryConfig configures the project/salt control store.
type RegistryConfig struct {
	DSN           string        `koanf:"dsn" validate:"required"`
	LookupTimeout time.Duration `koanf:"lookup_timeout"`
}

// GeoConfig configures the offline IP-range database.
type GeoConfig struct {
	// DatabasePath points at the range CSV (optionally gzipped).
	// Empty disables the offline fallback; the proxy-header path
	// still works.
	DatabasePath string `koanf:"database_path"`
}

// DeliveryConfig tunes the background delivery pipeline.
type DeliveryConfig struct {
	QueueSize int     `koanf:"queue_size" validate:"min=1"`
	Workers   int     `koanf:"workers" validate:"min=1,max=64"`
	RateLimit float64 `koanf:"rate_limit"`
}

// CacheConfig tunes the query cache.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// SecurityConfig holds read-path auth and abuse controls.
type SecurityConfig struct {
	// JWTSecret signs read-path tokens (HS256). Required only when
	// the query API is enabled.
	JWTSecret string `koanf:"jwt_secret"`

	CORSOrigins []string `koanf:"cors_origins"`

	// Public query endpoint rate limit: requests per window per client.
	PublicRateLimit  int           `koanf:"public_rate_limit" validate:"min=1"`
	PublicRateWindow time.Duration `koanf:"public_rate_window"`
}

// LoggingConfig configures the global zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration after all layers are applied.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %s", err.Error())
	}
	return nil
}
