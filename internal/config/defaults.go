package config

import "strings"

// RelayBase is the form relay service; the recipient address is appended.
const RelayBase = "https://formsubmit.co/ajax/"

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = ".portfolio.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port: 8080,
		Relay: RelayConfig{
			Endpoint:       RelayEndpoint("somtogreat69@gmail.com"),
			Subject:        "New Project Inquiry - Somto Portfolio",
			Captcha:        false,
			Template:       TemplateTable,
			TimeoutSeconds: 10,
		},
	}
}

// RelayEndpoint returns the relay URL that delivers to email.
func RelayEndpoint(email string) string {
	return RelayBase + strings.TrimSpace(email)
}
