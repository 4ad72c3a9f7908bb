// Package config aggregates the configuration sections of the service.
package config

import (
	"fmt"
	"strings"

	"github.com/baigojahanzaib/ajj-sales/pkg/config"
	"github.com/baigojahanzaib/ajj-sales/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig     `koanf:"server"`
	Database   config.DatabaseConfig `koanf:"database"`
	Log        config.LogConfig      `koanf:"log"`
	PProf      config.PProfConfig    `koanf:"pprof"`
	Nats       config.NATSConfig     `koanf:"nats"`
	Shutdown   config.ShutdownConfig `koanf:"shutdown"`
	Token      config.TokenConfig    `koanf:"token"`
	Ecwid      config.EcwidConfig    `koanf:"ecwid"`
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server Configuration ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.HTTPServer.Port))
	b.WriteString(fmt.Sprintf("  server.maxHeaderBytes: %d\n", c.HTTPServer.MaxHeaderBytes))
	b.WriteString(fmt.Sprintf("  server.readTimeout: %v\n", c.HTTPServer.ReadTimeout))
	b.WriteString(fmt.Sprintf("  server.writeTimeout: %v\n", c.HTTPServer.WriteTimeout))
	b.WriteString(fmt.Sprintf("  server.idleTimeout: %v\n", c.HTTPServer.IdleTimeout))
	b.WriteString(fmt.Sprintf("  server.readHeaderTimeout: %v\n", c.HTTPServer.ReadHeaderTimeout))

	b.WriteString("\n--- Database Configuration ---\n")
	b.WriteString(fmt.Sprintf("  database.url: %s\n", c.Database.Redacted()))
	b.WriteString(fmt.Sprintf("  database.timeout: %s\n", c.Database.Timeout))

	b.WriteString("\n--- External Services ---\n")
	b.WriteString(c.Ecwid.String())
	b.WriteString(fmt.Sprintf("  nats.url: %s\n", c.Nats.URL))
	b.WriteString(fmt.Sprintf("  nats.timeout: %s\n", c.Nats.Timeout))

	b.WriteString("\n--- Observability & Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  pprof.enabled: %t\n", c.PProf.Enabled))
	b.WriteString(fmt.Sprintf("  pprof.address: %s\n", c.PProf.Addr))

	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  shutdown.timeout: %s\n", c.Shutdown.Timeout))
	b.WriteString(fmt.Sprintf("  token.issuer: %s\n", c.Token.Issuer))
	b.WriteString(fmt.Sprintf("  token.ttl: %s\n", c.Token.TTL))

	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.Nats.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if err := c.Token.Validate(); err != nil {
		return err
	}
	if err := c.Ecwid.Validate(); err != nil {
		return err
	}

	return nil
}
