package config

import (
	"fmt"
	"time"
)

// HTTPConfig holds the API listener port and the per-request timeouts. The
// timeouts are deliberately mandatory: a zero read or write timeout leaves
// the server open to slow-client exhaustion.
type HTTPConfig struct {
	Port              int           `koanf:"port"`
	MaxHeaderBytes    int           `koanf:"maxHeaderBytes"`
	ReadTimeout       time.Duration `koanf:"readTimeout"`
	WriteTimeout      time.Duration `koanf:"writeTimeout"`
	IdleTimeout       time.Duration `koanf:"idleTimeout"`
	ReadHeaderTimeout time.Duration `koanf:"readHeaderTimeout"`
}

func (c *HTTPConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("http port %d is out of range", c.Port)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("http read timeout is not configured")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("http write timeout is not configured")
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("http idle timeout is not configured")
	}
	if c.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("http read header timeout is not configured")
	}
	return nil
}

// ShutdownConfig bounds how long in-flight requests may drain after SIGTERM
// before the servers are closed forcibly.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("shutdown grace period is not configured")
	}
	return nil
}
