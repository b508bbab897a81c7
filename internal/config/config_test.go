package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Relay.Endpoint != "https://formsubmit.co/ajax/somtogreat69@gmail.com" {
		t.Errorf("unexpected default relay endpoint %q", cfg.Relay.Endpoint)
	}
	if cfg.Relay.Template != TemplateTable {
		t.Errorf("expected default template %q, got %q", TemplateTable, cfg.Relay.Template)
	}
	if cfg.Relay.Captcha {
		t.Error("captcha should be disabled by default")
	}
	if cfg.Relay.Timeout() != 10*time.Second {
		t.Errorf("expected default timeout 10s, got %s", cfg.Relay.Timeout())
	}
	if cfg.AuditDB != "" {
		t.Errorf("audit log should be disabled by default, got %q", cfg.AuditDB)
	}
	if cfg.AuditToken != "" {
		t.Errorf("audit API should be off by default, got token %q", cfg.AuditToken)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.portfolio.yml")

	original := DefaultConfig()
	original.Port = 9090
	original.CatalogFile = "catalog.yml"
	original.AllowAllOrigins = true
	original.AuditDB = "audit.db"
	original.AuditToken = "s3cret"
	original.Relay.Endpoint = RelayEndpoint("me@example.com")
	original.Relay.Subject = "Hello"
	original.Relay.Captcha = true
	original.Relay.Template = TemplateBox
	original.Relay.TimeoutSeconds = 3

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if *loaded != *original {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", *loaded, *original)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yml")
	if err := os.WriteFile(path, []byte("relay:\n  subject: Custom\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Relay.Subject != "Custom" {
		t.Errorf("subject: got %q, want %q", cfg.Relay.Subject, "Custom")
	}
	if cfg.Relay.Template != TemplateTable {
		t.Errorf("template default lost: got %q", cfg.Relay.Template)
	}
	if cfg.Port != 8080 {
		t.Errorf("port default lost: got %d", cfg.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("port: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("PORTFOLIO_PORT", "9191")
	t.Setenv("PORTFOLIO_AUDIT_DB", "/var/lib/portfolio/audit.db")
	t.Setenv("PORTFOLIO_AUDIT_TOKEN", "s3cret")
	t.Setenv("PORTFOLIO_RELAY__ENDPOINT", "https://relay.example.com/ajax/x@y.z")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 9191 {
		t.Errorf("port override failed: got %d", loaded.Port)
	}
	if loaded.AuditDB != "/var/lib/portfolio/audit.db" {
		t.Errorf("audit_db override failed: got %q", loaded.AuditDB)
	}
	if loaded.AuditToken != "s3cret" {
		t.Errorf("audit_token override failed: got %q", loaded.AuditToken)
	}
	if loaded.Relay.Endpoint != "https://relay.example.com/ajax/x@y.z" {
		t.Errorf("relay.endpoint override failed: got %q", loaded.Relay.Endpoint)
	}
	if loaded.Relay.Subject != cfg.Relay.Subject {
		t.Errorf("relay.subject should be untouched, got %q", loaded.Relay.Subject)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"PORTFOLIO_PORT", "port"},
		{"PORTFOLIO_ALLOW_ALL_ORIGINS", "allow_all_origins"},
		{"PORTFOLIO_RELAY__TIMEOUT_SECONDS", "relay.timeout_seconds"},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"empty endpoint", func(c *Config) { c.Relay.Endpoint = "" }},
		{"relative endpoint", func(c *Config) { c.Relay.Endpoint = "/ajax/me@example.com" }},
		{"non-http endpoint", func(c *Config) { c.Relay.Endpoint = "ftp://formsubmit.co/me" }},
		{"unknown template", func(c *Config) { c.Relay.Template = "fancy" }},
		{"negative timeout", func(c *Config) { c.Relay.TimeoutSeconds = -1 }},
		{"audit token without audit db", func(c *Config) { c.AuditToken = "s3cret" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateEmptyTemplateAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Relay.Template = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty template should defer to the relay default, got: %v", err)
	}
}

func TestRelayEndpoint(t *testing.T) {
	if got := RelayEndpoint("  me@example.com "); got != "https://formsubmit.co/ajax/me@example.com" {
		t.Errorf("RelayEndpoint = %q", got)
	}
}

func TestWizardValidators(t *testing.T) {
	emails := []struct {
		in    string
		valid bool
	}{
		{"me@example.com", true},
		{"@example.com", false},
		{"me@", false},
		{"me example.com", false},
		{"me@example.com/x", false},
	}
	for _, tt := range emails {
		if err := validateEmail(tt.in); (err == nil) != tt.valid {
			t.Errorf("validateEmail(%q) err = %v, want valid=%v", tt.in, err, tt.valid)
		}
	}

	ports := []struct {
		in    string
		valid bool
	}{
		{"8080", true},
		{" 443 ", true},
		{"0", false},
		{"65536", false},
		{"http", false},
	}
	for _, tt := range ports {
		if err := validatePort(tt.in); (err == nil) != tt.valid {
			t.Errorf("validatePort(%q) err = %v, want valid=%v", tt.in, err, tt.valid)
		}
	}
}
