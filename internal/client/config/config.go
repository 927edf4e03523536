package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the kioskadmin console.
type Config struct {
	// APIBaseURL is the backend origin, e.g. https://api.example.com. Left
	// empty it surfaces as a configuration error on the first request.
	APIBaseURL          string        `env:"KIOSKADMIN_API_URL"`
	DatabasePath        string        `env:"KIOSKADMIN_DB"`
	RequestTimeout      time.Duration `env:"KIOSKADMIN_REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"KIOSKADMIN_ONLINE_CHECK_INTERVAL"`
	HealthPath          string        `env:"KIOSKADMIN_HEALTH_PATH"`
	LogLevel            string        `env:"KIOSKADMIN_LOG_LEVEL"`
	// StoreKey, when set, encrypts the saved session. It has no flag so it
	// stays out of the process list.
	StoreKey string `env:"KIOSKADMIN_STORE_KEY"`
	// ResetLocal wipes the saved session and the store salt before start-up,
	// for when StoreKey was lost.
	ResetLocal bool `env:"KIOSKADMIN_RESET_LOCAL"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = ""
	c.DatabasePath = "kioskadmin.db"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 10 * time.Second
	c.HealthPath = "/health"
	c.LogLevel = "info"
	c.StoreKey = ""
	c.ResetLocal = false
}

// LoadConfig applies defaults, then the JSON file, the environment and the
// command-line flags, later sources overriding earlier ones. It panics on
// unreadable sources.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	args := os.Args[1:]
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
