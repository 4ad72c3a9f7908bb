package config

import (
	"fmt"
	"strings"
	"time"
)

// EcwidConfig holds the connection settings for the Ecwid storefront API.
type EcwidConfig struct {
	BaseURL  string        `koanf:"baseurl"`
	StoreID  string        `koanf:"storeid"`
	Token    string        `koanf:"token"`
	Timeout  time.Duration `koanf:"timeout"`
	PageSize int           `koanf:"pagesize"`
	Breaker  BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker guarding outbound API calls.
type BreakerConfig struct {
	ConsecutiveFailures uint32        `koanf:"consecutivefailures"`
	ErrorRatePercent    int           `koanf:"errorratepercent"`
	OpenTimeout         time.Duration `koanf:"opentimeout"`
}

// String returns a string representation of the Ecwid configuration.
// The API token is never printed.
func (c *EcwidConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Ecwid ---\n")
	b.WriteString(fmt.Sprintf("  baseurl: %s\n", c.BaseURL))
	b.WriteString(fmt.Sprintf("  storeid: %s\n", c.StoreID))
	b.WriteString(fmt.Sprintf("  token: %s\n", mask(c.Token)))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	b.WriteString(fmt.Sprintf("  pagesize: %d\n", c.PageSize))
	return b.String()
}

func mask(s string) string {
	if s == "" {
		return "<not configured>"
	}
	return "****"
}

func (c *EcwidConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("ecwid base URL is not configured")
	}
	if c.StoreID == "" {
		return fmt.Errorf("ecwid store ID is not configured")
	}
	if c.Token == "" {
		return fmt.Errorf("ecwid API token is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("ecwid request timeout is not configured")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("ecwid page size must be greater than 0")
	}
	return c.Breaker.Validate()
}

func (c *BreakerConfig) Validate() error {
	if c.ConsecutiveFailures == 0 {
		return fmt.Errorf("breaker.consecutivefailures must be greater than 0")
	}
	if c.ErrorRatePercent < 0 || c.ErrorRatePercent > 100 {
		return fmt.Errorf("breaker.errorratepercent must be between 0 and 100")
	}
	if c.OpenTimeout <= 0 {
		return fmt.Errorf("breaker.opentimeout must be greater than 0")
	}
	return nil
}
