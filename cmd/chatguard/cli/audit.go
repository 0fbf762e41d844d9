package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tkingovr/chatguard/api"
	"github.com/tkingovr/chatguard/internal/audit"
	"github.com/tkingovr/chatguard/internal/config"
)

var (
	auditLogDir    string
	auditChannel   string
	auditList      string
	auditTriggered bool
	auditSince     string
	auditUntil     string
	auditLimit     int
	auditOffset    int
	auditStats     bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query the decision audit log",
	Long: `Query past moderation decisions from the audit log, or print
aggregate statistics with --stats. The log directory comes from
--log-dir or the configuration file's settings.`,
	Example: `  chatguard audit --log-dir /var/log/chatguard --channel 123 --triggered
  chatguard audit -c lists.yaml --list domains --limit 10
  chatguard audit -c lists.yaml --stats`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVar(&auditLogDir, "log-dir", "", "audit log directory (overrides config)")
	auditCmd.Flags().StringVar(&auditChannel, "channel", "", "only decisions for this channel id")
	auditCmd.Flags().StringVar(&auditList, "list", "", "only decisions involving this filter list")
	auditCmd.Flags().BoolVar(&auditTriggered, "triggered", false, "only decisions that triggered")
	auditCmd.Flags().StringVar(&auditSince, "since", "", "only decisions at or after this RFC 3339 time")
	auditCmd.Flags().StringVar(&auditUntil, "until", "", "only decisions before this RFC 3339 time")
	auditCmd.Flags().IntVar(&auditLimit, "limit", 0, "maximum number of records to print")
	auditCmd.Flags().IntVar(&auditOffset, "offset", 0, "number of matching records to skip")
	auditCmd.Flags().BoolVar(&auditStats, "stats", false, "print aggregate statistics instead of records")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	logDir := auditLogDir
	if logDir == "" && cfgFile != "" {
		f, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		logDir = f.Settings.LogDir
	}
	if logDir == "" {
		return fmt.Errorf("--log-dir or a config with settings.log_dir is required for audit command")
	}

	store, err := audit.NewJSONLStore(logDir)
	if err != nil {
		return fmt.Errorf("opening audit store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if auditStats {
		stats, err := store.Stats(ctx)
		if err != nil {
			return err
		}
		return enc.Encode(stats)
	}

	filter := api.QueryFilter{
		ChannelID: auditChannel,
		List:      auditList,
		Triggered: auditTriggered,
		Limit:     auditLimit,
		Offset:    auditOffset,
	}
	if auditSince != "" {
		ts, err := time.Parse(time.RFC3339, auditSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}
		filter.Since = ts
	}
	if auditUntil != "" {
		ts, err := time.Parse(time.RFC3339, auditUntil)
		if err != nil {
			return fmt.Errorf("parsing --until: %w", err)
		}
		filter.Until = ts
	}

	records, err := store.Query(ctx, filter)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
