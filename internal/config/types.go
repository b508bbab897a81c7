package config

import "time"

// RelayTemplate is the layout the form relay uses for the notification email.
type RelayTemplate string

const (
	TemplateBasic RelayTemplate = "basic"
	TemplateBox   RelayTemplate = "box"
	TemplateTable RelayTemplate = "table"
)

// Config is the top-level portfolio configuration, corresponding to .portfolio.yml.
type Config struct {
	Port            int         `yaml:"port" koanf:"port"`
	CatalogFile     string      `yaml:"catalog_file" koanf:"catalog_file"`
	AllowAllOrigins bool        `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	AuditDB         string      `yaml:"audit_db" koanf:"audit_db"`
	AuditToken      string      `yaml:"audit_token,omitempty" koanf:"audit_token"`
	Relay           RelayConfig `yaml:"relay" koanf:"relay"`
}

// RelayConfig holds the outbound form relay settings.
type RelayConfig struct {
	Endpoint       string        `yaml:"endpoint" koanf:"endpoint"`
	Subject        string        `yaml:"subject" koanf:"subject"`
	Captcha        bool          `yaml:"captcha" koanf:"captcha"`
	Template       RelayTemplate `yaml:"template" koanf:"template"`
	TimeoutSeconds int           `yaml:"timeout_seconds" koanf:"timeout_seconds"`
}

// Timeout returns the relay call timeout.
func (r RelayConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}
