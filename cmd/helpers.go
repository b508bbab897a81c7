package cmd

import (
	"fmt"

	"github.com/somtogreat69/portfolio/internal/audit"
	"github.com/somtogreat69/portfolio/internal/catalog"
	"github.com/somtogreat69/portfolio/internal/config"
	"github.com/somtogreat69/portfolio/internal/db"
	"github.com/somtogreat69/portfolio/internal/relay"
)

// openCatalog loads the configured catalog file, or the built-in catalog
// when none is set.
func openCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Open(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	return cat, nil
}

// newRelayFromConfig creates the outbound form relay client.
func newRelayFromConfig(cfg *config.Config) *relay.Client {
	return relay.New(relay.Options{
		Endpoint: cfg.Relay.Endpoint,
		Subject:  cfg.Relay.Subject,
		Captcha:  cfg.Relay.Captcha,
		Template: string(cfg.Relay.Template),
		Timeout:  cfg.Relay.Timeout(),
	}, logger.Named("relay"))
}

// openAuditFromConfig opens the submission audit log. It returns a nil store
// and a no-op close when audit_db is empty.
func openAuditFromConfig(cfg *config.Config) (*audit.Store, func() error, error) {
	if cfg.AuditDB == "" {
		return nil, func() error { return nil }, nil
	}
	database, err := db.Open(cfg.AuditDB)
	if err != nil {
		return nil, nil, fmt.Errorf("opening audit database %s: %w", cfg.AuditDB, err)
	}
	return audit.NewStore(database, logger.Named("audit")), database.Close, nil
}
