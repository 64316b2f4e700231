package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/userfeed/internal/flagx"
)

var knownFlags = []string{"-u", "-n", "-t", "-r", "-a", "-l"}

// parseFlags populates cfg from the flags it knows about; anything else on
// the command line is left for other parsers.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("userfeed", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "u", cfg.BaseURL, "base URL of the random user API")
	fs.IntVar(&cfg.Results, "n", cfg.Results, "number of users per fetch")
	fs.DurationVar(&cfg.ConnectTimeout, "t", cfg.ConnectTimeout, "connect timeout")
	fs.DurationVar(&cfg.ReadTimeout, "r", cfg.ReadTimeout, "read timeout")
	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "HTTP listen address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(flagx.FilterArgs(args, knownFlags))
}
