package config

import (
	"fmt"
	"net"
)

// PProfConfig controls the sidecar pprof listener. The address is only bound
// when enabled, so a disabled section needs no further validation.
type PProfConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

func (c *PProfConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("pprof address %q is not host:port: %w", c.Addr, err)
	}
	return nil
}
