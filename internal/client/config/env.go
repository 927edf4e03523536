package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

// parseEnv overlays cfg with the KIOSKADMIN_* variables that are set; unset
// variables leave the current value in place.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
