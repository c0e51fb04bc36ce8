package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/fixture-bot/internal/config"
	"github.com/pfrederiksen/fixture-bot/internal/logger"
	"github.com/pfrederiksen/fixture-bot/internal/notifier"
	"github.com/pfrederiksen/fixture-bot/internal/prematch"
	"github.com/pfrederiksen/fixture-bot/internal/report"
	"github.com/pfrederiksen/fixture-bot/internal/scheduler"
	"github.com/pfrederiksen/fixture-bot/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDryRun   bool
	flagFormat   string
	flagRunNow   bool
	flagLogLevel string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture-bot",
		Short: "Post Manchester United pre-match reports",
		Long: `A bot that scrapes fbref.com for the team's fixtures, results and
head-to-head history, and posts the next fixture, recent form and previous
meetings as a two-tweet thread about a day before kickoff.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Print posts to stdout instead of publishing")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	cmd.AddCommand(newRunCmd(), newServeCmd(), newPreviewCmd())
	return cmd
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one report cycle and exit",
		RunE:  runOnce,
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run report cycles on the configured schedule until interrupted",
		RunE:  runServe,
	}
	cmd.Flags().BoolVar(&flagRunNow, "now", false, "Run one cycle immediately before waiting for the schedule")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the report the next cycle would publish",
		RunE:  runPreview,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	return cmd
}

// app holds everything a command needs once configuration is loaded
type app struct {
	cfg *config.Config
	loc *time.Location
	log *logger.Logger
}

// setup loads and validates configuration and installs the default logger
func setup(out io.Writer, dryRun bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}
	if dryRun {
		cfg.DryRun = true
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	level := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(level, out)
	if cfg.LogPretty {
		log = logger.NewConsole(level, out)
	}
	logger.SetDefault(log)

	return &app{cfg: cfg, loc: loc, log: log}, nil
}

// newNotifier picks the dry-run notifier or the Twitter client
func (a *app) newNotifier(out io.Writer) (notifier.Notifier, error) {
	if a.cfg.DryRun {
		return notifier.NewDryRunNotifier(out), nil
	}
	return notifier.NewTwitterNotifier(a.cfg.Twitter)
}

// service wires the scraper and publisher into a report cycle
func (a *app) service(n notifier.Notifier) *prematch.Service {
	var pub prematch.Publisher
	if n != nil {
		pub = report.NewPublisher(n, report.NewGate(a.cfg.IsProduction()), a.cfg.TeamHandle)
	}
	return prematch.New(scraper.New(a.loc), pub, prematch.Options{
		TeamURL:     a.cfg.TeamURL,
		BaseURL:     a.cfg.BaseURL,
		PrimaryTeam: a.cfg.PrimaryTeam,
		Location:    a.loc,
	})
}

func (a *app) publishingService(out io.Writer) (*prematch.Service, error) {
	n, err := a.newNotifier(out)
	if err != nil {
		return nil, errors.Wrap(err, "initializing notifier")
	}

	a.log.Info("Starting fixture-bot", logger.Fields{
		"environment": a.cfg.Environment,
		"team":        a.cfg.PrimaryTeam,
		"timezone":    a.loc.String(),
		"dry_run":     a.cfg.DryRun,
	})
	return a.service(n), nil
}

func runOnce(cmd *cobra.Command, args []string) error {
	a, err := setup(os.Stderr, flagDryRun)
	if err != nil {
		return err
	}

	svc, err := a.publishingService(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	status, err := svc.RunCycle()
	logger.LogMetrics("Cycle metrics")
	if err != nil {
		return errors.Wrap(err, "running cycle")
	}

	if !status.Published {
		a.log.Info("Nothing published", logger.Fields{"reason": status.Reason})
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup(os.Stderr, flagDryRun)
	if err != nil {
		return err
	}

	svc, err := a.publishingService(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	sched := scheduler.New(a.log, a.loc)
	if err := sched.AddJob(a.cfg.Schedule, svc); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched.Start()
	if flagRunNow {
		if err := sched.RunNow(svc); err != nil {
			a.log.Error("Initial cycle failed", nil, err)
		}
	}
	a.log.Info("Waiting for next cycle", logger.Fields{"next": sched.Next().Format(time.RFC3339)})

	<-ctx.Done()
	a.log.Info("Shutting down", nil)
	sched.Stop()
	logger.LogMetrics("Final metrics")
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return errors.Newf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	// Preview never posts, so credentials are not required
	a, err := setup(os.Stderr, true)
	if err != nil {
		return err
	}

	r, err := a.service(nil).Derive()
	if err != nil {
		return errors.Wrap(err, "deriving report")
	}

	result := NewOutputResult(r, a.cfg.TeamHandle, report.NewGate(a.cfg.IsProduction()))
	if err := WriteOutput(cmd.OutOrStdout(), result, format); err != nil {
		return errors.Wrap(err, "writing output")
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
