package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/helpdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-m int      session cookie max age, hours
//	-k int      bcrypt cost
//	-l string   log level
//
// Args are first narrowed with flagx.FilterArgs so flags belonging to other
// components (such as -c) do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-m", "-k", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	sessionMaxAge := fs.Int("m", int(config.SessionMaxAge.Hours()), "session max age (in hours)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -m only overrides when given, so sub-hour values from JSON survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "m" {
			config.SessionMaxAge = time.Duration(*sessionMaxAge) * time.Hour
		}
	})
}
