package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/somtogreat69/portfolio/internal/audit"
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "List contact form relay attempts from the audit log",
	Long:  `Reads the submission audit log configured by audit_db and prints recent relay attempts, newest first.`,
	RunE:  runSubmissions,
}

func init() {
	submissionsCmd.Flags().String("outcome", "", "filter by outcome: resolved, rejected")
	submissionsCmd.Flags().Int("limit", 20, "maximum number of attempts")
	submissionsCmd.Flags().Duration("since", 0, "only attempts newer than this (e.g. 24h)")
	submissionsCmd.Flags().Bool("json", false, "output attempts as JSON")
	rootCmd.AddCommand(submissionsCmd)
}

func runSubmissions(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	outcome, _ := cmd.Flags().GetString("outcome")
	limit, _ := cmd.Flags().GetInt("limit")
	since, _ := cmd.Flags().GetDuration("since")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	filter := audit.QueryFilter{Limit: limit}
	if outcome != "" {
		filter.Outcome = audit.Outcome(outcome)
		if !filter.Outcome.Valid() {
			return fmt.Errorf("invalid outcome %q: must be resolved or rejected", outcome)
		}
	}
	if since > 0 {
		t := time.Now().Add(-since)
		filter.Since = &t
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.AuditDB == "" {
		return fmt.Errorf("audit log is disabled: set audit_db in %s", cfgFile)
	}
	store, closeAudit, err := openAuditFromConfig(cfg)
	if err != nil {
		return err
	}
	defer closeAudit()

	attempts, err := store.Query(ctx, filter)
	if err != nil {
		return fmt.Errorf("querying audit log: %w", err)
	}

	if jsonOutput {
		if attempts == nil {
			attempts = []audit.Attempt{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(attempts)
	}

	if len(attempts) == 0 {
		fmt.Println("No submissions recorded.")
		return nil
	}
	printAttemptsTable(os.Stdout, attempts)
	return nil
}

func printAttemptsTable(w io.Writer, attempts []audit.Attempt) {
	fmt.Fprintf(w, "Found %d attempts:\n\n", len(attempts))
	for i, a := range attempts {
		fmt.Fprintf(w, "  %d. [%s] %s  %s\n", i+1, a.Outcome, a.Timestamp.Local().Format(time.DateTime), a.SessionID)
		fmt.Fprintf(w, "     %s <%s>, %s\n", a.ServiceDomain, a.SenderEmail, a.Duration.Round(time.Millisecond))
		if a.Error != "" {
			fmt.Fprintf(w, "     Error: %s\n", truncate(a.Error, 120))
		}
		fmt.Fprintln(w)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
