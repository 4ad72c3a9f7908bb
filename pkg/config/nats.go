package config

import (
	"fmt"
	"time"
)

// NATSConfig holds the JetStream connection settings. The client's reconnect
// callback doubles as the connectivity-restored signal that drains the
// offline order queue.
type NATSConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

func (c *NATSConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("nats url is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("nats dial timeout is not configured")
	}
	return nil
}
