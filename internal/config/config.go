package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv      string `env:"APP_ENV" envDefault:"production"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
	DBConnectAttempts  int `env:"DB_CONNECT_ATTEMPTS" envDefault:"30"`

	// LockTimeout bounds each row-lock wait inside a unit of work. Zero waits forever.
	LockTimeout    time.Duration `env:"LOCK_TIMEOUT" envDefault:"0s"`
	MigrateOnStart bool          `env:"MIGRATE_ON_START" envDefault:"true"`
	MetricsEnabled bool          `env:"METRICS_ENABLED" envDefault:"true"`

	Simulation SimulationConfig `envPrefix:"SIMULATION_"`
}

type SimulationConfig struct {
	TermCode     string        `env:"TERM_CODE" envDefault:"2025FA"`
	Population   int           `env:"POPULATION" envDefault:"120"`
	MinAmount    int64         `env:"MIN_AMOUNT" envDefault:"325"`
	AmountSpread int64         `env:"AMOUNT_SPREAD" envDefault:"300"`
	DefaultCount int           `env:"DEFAULT_COUNT" envDefault:"20"`
	MaxCount     int           `env:"MAX_COUNT" envDefault:"1000"`
	RatePerSec   float64       `env:"RATE_PER_SEC" envDefault:"0"`
	Interval     time.Duration `env:"INTERVAL" envDefault:"0s"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	s := c.Simulation
	switch {
	case s.Population < 1:
		return fmt.Errorf("SIMULATION_POPULATION must be at least 1, got %d", s.Population)
	case s.MinAmount < 1:
		return fmt.Errorf("SIMULATION_MIN_AMOUNT must be positive, got %d", s.MinAmount)
	case s.AmountSpread < 1:
		return fmt.Errorf("SIMULATION_AMOUNT_SPREAD must be positive, got %d", s.AmountSpread)
	case s.DefaultCount < 1 || s.DefaultCount > s.MaxCount:
		return fmt.Errorf("SIMULATION_DEFAULT_COUNT must be within 1..%d, got %d", s.MaxCount, s.DefaultCount)
	case c.LockTimeout < 0:
		return fmt.Errorf("LOCK_TIMEOUT must not be negative")
	}
	return nil
}
