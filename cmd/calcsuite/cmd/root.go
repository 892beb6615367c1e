// Package cmd implements the calcsuite command line.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/iwvelando/calcsuite/internal/calculator"
	"github.com/iwvelando/calcsuite/internal/config"
	"github.com/iwvelando/calcsuite/internal/logging"
	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/iwvelando/calcsuite/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Build metadata, set with -ldflags "-X".
var (
	Version   = "dev"
	GitCommit = "development"
	BuildDate = "unknown"
)

// app holds the state shared by every subcommand once flags are parsed.
type app struct {
	configPath   string
	logLevel     string
	outputFormat string
	now          func() time.Time

	conf    *config.Configuration
	logger  *zap.Logger
	svc     *calculator.Service
	printer *output.Printer
}

// Execute runs the calcsuite command line.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the calcsuite command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(time.Now)
}

func newRootCommand(now func() time.Time) *cobra.Command {
	a := &app{now: now}

	root := &cobra.Command{
		Use:   "calcsuite",
		Short: "Everyday date, loan, health and finance calculators",
		Long: `calcsuite computes ages and date offsets, pregnancy milestones,
loan EMIs and amortization schedules, BMI and BMR, percentage change,
compound and SIP growth, and GST breakdowns.

Every calculator is also served as a JSON API by "calcsuite serve".`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&a.outputFormat, "output-format", "", "type of output override: pretty, csv, json")

	root.AddCommand(
		a.emiCommand(),
		a.scheduleCommand(),
		a.elapsedCommand(),
		a.offsetCommand(),
		a.pregnancyCommand(),
		a.bmiCommand(),
		a.bmrCommand(),
		a.changeCommand(),
		a.compoundCommand(),
		a.sipCommand(),
		a.gstCommand(),
		a.serveCommand(),
		versionCommand(),
	)
	return root
}

// setup loads the configuration, logger, service and printer.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "cmd.setup"),
		)
	}

	// CLI override takes precedence over config
	format := conf.Output.Format
	if a.outputFormat != "" {
		format = a.outputFormat
	}
	printer, err := output.NewPrinter(cmd.OutOrStdout(), format, conf.Output.CurrencySymbol)
	if err != nil {
		return err
	}

	a.conf = conf
	a.logger = logger
	a.printer = printer
	a.svc = calculator.New(
		calculator.WithLimits(conf.Limits),
		calculator.WithLogger(logger),
		calculator.WithClock(a.now),
	)
	return nil
}
