package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/tkingovr/chatguard/api"
	"github.com/tkingovr/chatguard/internal/audit"
	"github.com/tkingovr/chatguard/internal/config"
	"github.com/tkingovr/chatguard/internal/engine"
)

var (
	runLogDir      string
	runMetricsAddr string
	runNoWatch     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate a stream of message events from stdin",
	Long: `Read JSON message events from stdin, one per line, and write the
decision for each to stdout. Decisions are appended to the audit log and
the configuration file is watched for changes; a changed file is
reloaded atomically without disturbing in-flight evaluations.`,
	Example: `  tail -f events.jsonl | chatguard run -c lists.yaml
  chatguard run -c lists.yaml --metrics-addr 127.0.0.1:9180 < events.jsonl`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runLogDir, "log-dir", "", "audit log directory (overrides config)")
	runCmd.Flags().StringVar(&runMetricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address (overrides config)")
	runCmd.Flags().BoolVar(&runNoWatch, "no-watch", false, "disable config file watching")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("--config/-c is required for run command")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Read settings ahead of engine construction; the audit store location
	// comes from them unless overridden.
	f, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	settings := f.Settings

	logDir := runLogDir
	if logDir == "" {
		logDir = settings.LogDir
	}
	var store audit.Store
	if logDir != "" {
		s, err := audit.NewJSONLStore(logDir)
		if err != nil {
			return fmt.Errorf("opening audit store: %w", err)
		}
		defer func() {
			if err := s.Close(); err != nil {
				logger.Error("closing audit store", "error", err)
			}
		}()
		store = s
	}

	eng, err := engine.New(engine.Config{
		Logger: logger,
		Store:  store,
		Path:   cfgFile,
	})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	metricsAddr := runMetricsAddr
	if metricsAddr == "" {
		metricsAddr = settings.MetricsAddr
	}
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Info("serving metrics", "addr", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	if !runNoWatch {
		go func() {
			if err := eng.Watch(ctx); err != nil {
				logger.Error("config watcher stopped", "error", err)
			}
		}()
	}

	return processEvents(ctx, eng)
}

func processEvents(ctx context.Context, eng *engine.Engine) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max event

	enc := json.NewEncoder(os.Stdout)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		ev, err := api.ParseEvent(line)
		if err != nil {
			logger.Error("skipping malformed event", "error", err)
			continue
		}

		rec, err := eng.Evaluate(ctx, ev)
		if err != nil {
			logger.Error("evaluation error", "message_id", ev.MessageID, "error", err)
			continue
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("writing decision: %w", err)
		}
	}
	return scanner.Err()
}
