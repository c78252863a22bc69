// Package config defines environment configuration structs, loaders, and the
// rating profile that drives a run.
package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	ServerEnvConfig
	SourceEnvConfig
	StatsAPIEnvConfig
	KeeperEnvConfig
}

func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ServerEnvConfig configures the HTTP service.
type ServerEnvConfig struct {
	Host          string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port          int    `env:"SERVER_PORT" envDefault:"8188"`
	BodySizeLimit int    `env:"SERVER_BODY_LIMIT" envDefault:"4194304"`
}

// SourceEnvConfig points the daemon at the stat table it refreshes from.
// Exactly one of SourcePath, SourceURL, or the stats API should be set; the
// keeper resolves them in that order.
type SourceEnvConfig struct {
	SourcePath  string `env:"SOURCE_PATH"`
	SourceURL   string `env:"SOURCE_URL"`
	ProfilePath string `env:"PROFILE_PATH"`
}

// StatsAPIEnvConfig configures stats provider API access.
type StatsAPIEnvConfig struct {
	StatsAPIUrl string `env:"STATS_API_URL"`
}

// KeeperEnvConfig configures the leaderboard keeper runtime.
type KeeperEnvConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"prod"`
}

type IntervalConfig struct {
	RefreshInterval time.Duration
}

var (
	DevIntervalConfig = &IntervalConfig{
		RefreshInterval: 30 * time.Second,
	}
	TestIntervalConfig = &IntervalConfig{
		RefreshInterval: 5 * time.Minute,
	}

	ProdIntervalConfig = &IntervalConfig{
		RefreshInterval: 15 * time.Minute,
	}
)

func NewIntervalConfig(environment string) *IntervalConfig {
	switch strings.ToLower(environment) {
	case "dev":
		return DevIntervalConfig
	case "test":
		return TestIntervalConfig
	case "prod":
		return ProdIntervalConfig
	}

	return DevIntervalConfig
}
