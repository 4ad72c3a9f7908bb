package config

import (
	"fmt"
	"time"
)

// TokenConfig configures the signing of mobile session tokens.
type TokenConfig struct {
	Secret string        `koanf:"secret"`
	Issuer string        `koanf:"issuer"`
	TTL    time.Duration `koanf:"ttl"`
}

func (c *TokenConfig) Validate() error {
	if len(c.Secret) < 32 {
		return fmt.Errorf("token secret must be at least 32 bytes")
	}
	if c.Issuer == "" {
		return fmt.Errorf("token issuer cannot be empty")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("token TTL must be greater than zero")
	}
	return nil
}
