// Package config loads runtime configuration for the userfeed binaries.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with USERFEED_ (read with cleanenv).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-u string     base URL of the random user API
//	-n int        number of users requested per fetch
//	-t duration   connect timeout (e.g. 15s)
//	-r duration   read timeout (e.g. 15s)
//	-a string     listen address of the HTTP server
//	-l string     log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "15s" or
// integer nanoseconds:
//
//	{
//	  "base_url": "https://randomuser.me/",
//	  "results": 10,
//	  "connect_timeout": "15s",
//	  "read_timeout": "15s",
//	  "listen_addr": ":8080",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
