package config

import (
	"fmt"
	"net/url"
	"time"
)

// DatabaseConfig holds the Postgres DSN and the connect timeout applied when
// the pool is created.
type DatabaseConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// Redacted returns the DSN with the embedded password masked, safe for
// startup logging.
func (c *DatabaseConfig) Redacted() string {
	if c.URL == "" {
		return "<not configured>"
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}

func (c *DatabaseConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("database url is not configured")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("database url is not parseable: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("database url scheme %q is not a postgres DSN", u.Scheme)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("database connect timeout is not configured")
	}
	return nil
}
