package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays cfg with USERFEED_* variables. Unset variables leave the
// current values untouched.
func parseEnv(cfg *Config) error {
	return cleanenv.ReadEnv(cfg)
}
