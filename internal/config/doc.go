// Package config loads runtime configuration for the ClassNote client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the sync server
//	-u string   username owning the synced data
//	-d string   data directory root
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "5s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:3001",
//	  "username": "alice",
//	  "online_check_interval": "5s",
//	  "settings_allow_list": ["theme", "language"]
//	}
//
// Keys absent from the file keep their defaults, so partial files are fine.
package config
