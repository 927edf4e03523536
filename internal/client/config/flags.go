package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/kioskadmin/internal/flagx"
)

// parseFlags overlays cfg with the console's own flags, ignoring the rest of
// args. It panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-i", "-l", "-r"})

	fs := flag.NewFlagSet("kioskadmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local session database")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "HTTP request timeout")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.ResetLocal, "r", cfg.ResetLocal, "wipe the saved session before start")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -i only has whole seconds; keep finer values from JSON or env unless it was given
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
}
