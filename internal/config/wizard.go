package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to portfolio! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Where contact form submissions are delivered.
	emailPrompt := promptui.Prompt{
		Label:    "Email address that receives contact form submissions",
		Default:  strings.TrimPrefix(cfg.Relay.Endpoint, RelayBase),
		Validate: validateEmail,
	}
	email, err := emailPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("relay email: %w", err)
	}
	cfg.Relay.Endpoint = RelayEndpoint(email)

	// 2. Notification subject.
	subjectPrompt := promptui.Prompt{
		Label:   "Subject line for submission emails",
		Default: cfg.Relay.Subject,
	}
	subject, err := subjectPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("relay subject: %w", err)
	}
	cfg.Relay.Subject = strings.TrimSpace(subject)

	// 3. Email layout.
	templatePrompt := promptui.Select{
		Label: "Select email template",
		Items: []string{
			"table: one row per field",
			"box: fields in a bordered box",
			"basic: plain text",
		},
	}
	templateIdx, _, err := templatePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("template selection: %w", err)
	}
	templates := []RelayTemplate{TemplateTable, TemplateBox, TemplateBasic}
	cfg.Relay.Template = templates[templateIdx]

	// 4. Listen port.
	portPrompt := promptui.Prompt{
		Label:    "Port to serve the site on",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 5. Audit log.
	auditPrompt := promptui.Prompt{
		Label:   "Submission audit database (leave blank to disable)",
		Default: ".portfolio/audit.db",
	}
	auditDB, err := auditPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("audit db: %w", err)
	}
	cfg.AuditDB = strings.TrimSpace(auditDB)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 || strings.ContainsAny(s, " /?#") {
		return errors.New("enter a valid email address")
	}
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return errors.New("port must be a number between 1 and 65535")
	}
	return nil
}
