package config

import "time"

// Config holds runtime settings for the TaskKeeper CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend REST API.
//   - DatabaseDSN: path of the local SQLite database used for offline mode.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - ProbeTimeout: per-probe timeout for the reachability check.
//   - LocalLatency: artificial delay applied to local (offline) operations,
//     useful for exercising loading states; zero disables it.
type Config struct {
	ServerEndpointAddr  string
	DatabaseDSN         string
	OnlineCheckInterval time.Duration
	ProbeTimeout        time.Duration
	LocalLatency        time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.DatabaseDSN = "taskkeeper.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.ProbeTimeout = 2 * time.Second
	c.LocalLatency = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
