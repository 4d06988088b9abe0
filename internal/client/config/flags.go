package config

import (
	"flag"
	"os"
	"time"

	"github.com/mpetrov/taskkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-d string   path of the local SQLite database (default from Config)
//	-i int      online check interval in seconds (default from Config)
//	-p int      reachability probe timeout in seconds (default from Config)
//	-l int      artificial local-mode latency in milliseconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL to access server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path of the local database")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	probeTimeout := fs.Int("p", int(cfg.ProbeTimeout.Seconds()), "reachability probe timeout (in seconds)")
	localLatency := fs.Int("l", int(cfg.LocalLatency.Milliseconds()), "artificial local-mode latency (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.ProbeTimeout = time.Duration(*probeTimeout) * time.Second
	cfg.LocalLatency = time.Duration(*localLatency) * time.Millisecond
}
