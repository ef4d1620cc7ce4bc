package main

import (
	"cs-balancer/balancer"
	"cs-balancer/config"
	"cs-balancer/formatter"
	"cs-balancer/logging"
	"cs-balancer/metrics"
	"cs-balancer/models"
	"cs-balancer/parser"
	"cs-balancer/printer"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/spf13/cobra"
)

const jobName = "cs_balancer"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the CLI. Output goes to stdout, diagnostics to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "cs-balancer",
		Short: "Find the CustomerSuccess agent serving the most customers",
		Long: `cs-balancer assigns every customer to the lowest scoring available agent
whose score is at least the customer's, then reports the agent that ends up
with the most customers. It prints 0 when there is no single winner.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return printer.Error(stderr, "Invalid arguments", err)
			}
			return run(cfg, stdout, stderr)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Input, "input", "i", cfg.Input, "Input file, CSV or YAML/JSON (required)")
	flags.StringVar(&cfg.InputFormat, "input-format", cfg.InputFormat, "Input format: auto|csv|yaml")
	flags.StringVarP(&cfg.Format, "format", "f", cfg.Format, "Output format: text|json|csv")
	flags.IntSliceVar(&cfg.Away, "away", cfg.Away, "Additional away agent ids")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text|json")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Address to expose Prometheus metrics (e.g., :9090)")
	flags.StringVar(&cfg.PushURL, "push-url", cfg.PushURL, "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	flags.BoolVar(&cfg.Wait, "wait", cfg.Wait, "Keep process running after completion to allow for metric scraping")

	return cmd
}

func run(cfg config.Config, stdout, stderr io.Writer) error {
	runID := uuid.NewString()
	logger := logging.New(stderr, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, RunID: runID})

	// Start metrics server if address provided
	if cfg.MetricsAddr != "" {
		go func() {
			logger.Info("metrics server listening", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, metrics.Handler()); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	input, err := readInput(cfg, logger)
	if err != nil {
		return printer.Error(stderr, "Error parsing file", err)
	}
	away := append(append([]int(nil), input.Away...), cfg.Away...)

	start := time.Now()
	outcome := balancer.Run(input.Agents, input.Customers, away)
	elapsed := time.Since(start)
	metrics.Observe(outcome, elapsed)

	logger.Debug("balancing finished",
		"rounds", len(outcome.Rounds),
		"assigned", outcome.Assigned(),
		"waiting", outcome.Waiting,
		"duration", elapsed)
	if outcome.WinnerID == 0 {
		printer.Warning(stderr, "no single winner (%s)\n", outcome.Reason)
	} else {
		printer.Success(stderr, "agent %d serves %d customers\n", outcome.WinnerID, outcome.Leader.Count)
	}

	// Output based on format
	switch cfg.Format {
	case "json":
		fmt.Fprintln(stdout, formatter.FormatJSON(outcome))
	case "csv":
		fmt.Fprint(stdout, formatter.FormatCSV(outcome))
	default: // "text"
		fmt.Fprint(stdout, formatter.FormatText(outcome))
	}

	if cfg.PushURL != "" {
		pusher := push.New(cfg.PushURL, jobName).Gatherer(metrics.Registry).Grouping("run_id", runID)
		if err := pusher.Push(); err != nil {
			logger.Error("pushing to pushgateway failed", "url", cfg.PushURL, "error", err)
		} else {
			logger.Info("metrics pushed to pushgateway", "url", cfg.PushURL)
		}
	}

	if cfg.Wait && cfg.MetricsAddr != "" {
		logger.Info("process kept alive for metric scraping, press Ctrl+C to exit")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logger.Info("exiting")
	} else if cfg.MetricsAddr != "" && cfg.PushURL == "" {
		// Small delay to allow a final scrape
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}

// readInput opens and parses the input file with the configured parser.
func readInput(cfg config.Config, logger *slog.Logger) (models.Input, error) {
	file, err := os.Open(cfg.Input)
	if err != nil {
		return models.Input{}, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	format := cfg.ResolvedInputFormat()
	start := time.Now()
	var input models.Input
	if format == config.InputYAML {
		input, err = parser.ParseYAML(file)
	} else {
		input, err = parser.Parse(file)
	}
	metrics.ObserveParse(input, err, time.Since(start))
	if err != nil {
		return models.Input{}, err
	}

	logger.Info("input parsed",
		"file", cfg.Input,
		"format", format,
		"agents", len(input.Agents),
		"customers", len(input.Customers),
		"away", len(input.Away))
	return input, nil
}
