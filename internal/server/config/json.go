package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/helpdesk/internal/flagx"
	"github.com/dmitrijs2005/helpdesk/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "720h" and integer nanoseconds are accepted.
// Fields absent from the file keep their current value.
type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SessionMaxAge    *timex.Duration `json:"session_max_age"`
	InsecureCookies  *bool           `json:"insecure_cookies"`
	BcryptCost       *int            `json:"bcrypt_cost"`
	LogLevel         *string         `json:"log_level"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the JSON file named by -c/-config (or
// $HELPDESK_CONFIG) onto config. Without a file nothing changes. An
// unreadable file or invalid JSON panics: the server must not start on a
// half-read configuration.
func parseJson(config *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SessionMaxAge != nil {
		config.SessionMaxAge = c.SessionMaxAge.Duration
	}
	if c.InsecureCookies != nil {
		config.InsecureCookies = *c.InsecureCookies
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
