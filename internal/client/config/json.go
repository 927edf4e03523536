package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/kioskadmin/internal/flagx"
	"github.com/dmitrijs2005/kioskadmin/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent keys keep the
// current values.
type JsonConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	DatabasePath        *string         `json:"database_path"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	HealthPath          *string         `json:"health_path"`
	LogLevel            *string         `json:"log_level"`
	StoreKey            *string         `json:"store_key"`
}

// parseJson overlays cfg with the file named by -c/-config. It is a no-op
// without the flag and panics on read or decode errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.HealthPath != nil {
		cfg.HealthPath = *jc.HealthPath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.StoreKey != nil {
		cfg.StoreKey = *jc.StoreKey
	}
}
