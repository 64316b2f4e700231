package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userfeed/internal/flagx"
	"github.com/dmitrijs2005/userfeed/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero so absent keys keep earlier values.
type jsonConfig struct {
	BaseURL        *string         `json:"base_url"`
	Results        *int            `json:"results"`
	ConnectTimeout *timex.Duration `json:"connect_timeout"`
	ReadTimeout    *timex.Duration `json:"read_timeout"`
	ListenAddr     *string         `json:"listen_addr"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`
}

// parseJSON overlays cfg with the file given via -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.BaseURL != nil {
		cfg.BaseURL = *jc.BaseURL
	}
	if jc.Results != nil {
		cfg.Results = *jc.Results
	}
	if jc.ConnectTimeout != nil {
		cfg.ConnectTimeout = jc.ConnectTimeout.Duration
	}
	if jc.ReadTimeout != nil {
		cfg.ReadTimeout = jc.ReadTimeout.Duration
	}
	if jc.ListenAddr != nil {
		cfg.ListenAddr = *jc.ListenAddr
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	return nil
}
