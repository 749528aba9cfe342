package config

import (
	"os"
	"runtime"
	"time"

	"github.com/dmitrijs2005/classnote/internal/filex"
)

// Config holds runtime settings for the ClassNote client.
//
// Fields:
//   - ServerBaseURL: base URL of the sync server, e.g. http://127.0.0.1:3001.
//   - Username: account every synced record belongs to.
//   - DeviceID: stable identifier for this installation; minted on first
//     device registration when empty.
//   - DeviceName / DevicePlatform: how this installation announces itself.
//   - DataDir: root of the local data layout (audio/, documents/, cache/).
//   - DatabaseDSN: SQLite DSN; derived from DataDir when left empty.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: per-request HTTP timeout.
//   - SettingsAllowList: the only settings keys that leave the device.
type Config struct {
	ServerBaseURL       string
	Username            string
	DeviceID            string
	DeviceName          string
	DevicePlatform      string
	DataDir             string
	DatabaseDSN         string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	SettingsAllowList   []string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:3001"
	c.DeviceName, _ = os.Hostname()
	if c.DeviceName == "" {
		c.DeviceName = "classnote-device"
	}
	c.DevicePlatform = runtime.GOOS
	if root, err := filex.DefaultRoot(); err == nil {
		c.DataDir = root
	} else {
		c.DataDir = "."
	}
	c.OnlineCheckInterval = 5 * time.Second
	c.RequestTimeout = 30 * time.Second
	c.SettingsAllowList = []string{"theme", "language", "subtitle_mode", "auto_sync"}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. The database DSN is derived from the final
// data directory unless a source set it explicitly.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = filex.NewDirs(cfg.DataDir).DatabasePath()
	}
	return cfg
}
