package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/somtogreat69/portfolio/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the case study catalog and, when audit_db is set, the submission audit log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cat, err := openCatalog(cfg)
		if err != nil {
			return err
		}
		store, closeAudit, err := openAuditFromConfig(cfg)
		if err != nil {
			return err
		}
		defer closeAudit()

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		logger.Info("portfolio MCP server started on stdio",
			zap.Int("case_studies", len(cat.CaseStudies())),
			zap.Bool("audit", store != nil))

		return mcpserver.NewServer(cat, store).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
