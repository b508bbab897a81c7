package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/somtogreat69/portfolio/internal/metrics"
	"github.com/somtogreat69/portfolio/internal/server"
	"github.com/somtogreat69/portfolio/internal/view"
)

// shutdownTimeout bounds how long in-flight requests get on SIGTERM.
const shutdownTimeout = 15 * time.Second

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the portfolio site",
	Long:  `Starts the portfolio HTTP server with the page, case study fragments, live websocket sessions, metrics and the optional submission audit API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}

		cat, err := openCatalog(cfg)
		if err != nil {
			return err
		}
		renderer, err := view.NewRenderer()
		if err != nil {
			return fmt.Errorf("loading templates: %w", err)
		}

		opts := []server.Option{
			server.WithLogger(logger),
			server.WithMetrics(metrics.New()),
		}
		store, closeAudit, err := openAuditFromConfig(cfg)
		if err != nil {
			return err
		}
		defer closeAudit()
		if store != nil {
			opts = append(opts, server.WithAudit(store))
		}

		srv := server.New(server.Config{
			Port:       cfg.Port,
			AllowAll:   cfg.AllowAllOrigins,
			AuditToken: cfg.AuditToken,
		}, cat, renderer, newRelayFromConfig(cfg), opts...)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		shutdownDone := make(chan struct{})
		go func() {
			defer close(shutdownDone)
			<-ctx.Done()
			logger.Info("shutting down server")
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil {
				logger.Warn("shutdown", zap.Error(err))
			}
		}()

		logger.Info("portfolio server starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Port),
			zap.Int("case_studies", len(cat.CaseStudies())),
			zap.Int("apps", len(cat.Apps())),
			zap.Bool("audit", store != nil),
			zap.Bool("audit_api", store != nil && cfg.AuditToken != ""))

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		<-shutdownDone
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
