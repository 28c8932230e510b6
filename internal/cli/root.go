// Package cli holds the cobra commands of the expertcalc binary.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/okian/expertcalc/internal/adapters/repository"
	service "github.com/okian/expertcalc/internal/app"
	"github.com/okian/expertcalc/internal/config"
	"github.com/okian/expertcalc/pkg/logger"
)

// Annotations a subcommand can set to change how logging is initialised.
const (
	annotationLogLevel  = "expertcalc/log-level"
	annotationLogOutput = "expertcalc/log-output"
	logOutputDiscard    = "discard"
)

// globals carries the persistent flags and the config they resolve to.
type globals struct {
	configPath string
	dataset    string
	logLevel   string
	logFormat  string
	noColor    bool

	cfg *config.Config
}

// RootCmd returns the root command with every subcommand attached.
func RootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "expertcalc",
		Short: "Recommend which expert to acquire next",
		Long: `expertcalc ranks the experts you do not own yet by how many stage
requirements each one would newly satisfy.

The owned set starts from the story experts. Use "recommend" for a one-shot
ranking, "tui" to tick experts interactively, or "serve" for the HTTP API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", os.Getenv(config.EnvConfig), "path to a YAML config file")
	flags.StringVar(&g.dataset, "dataset", "", "path to the dataset (overrides dataset_path)")
	flags.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&g.logFormat, "log-format", "", "log format: text or json")
	flags.BoolVar(&g.noColor, "no-color", false, "disable coloured output")

	cmd.AddCommand(ServeCmd(g))
	cmd.AddCommand(RecommendCmd(g))
	cmd.AddCommand(ExpertsCmd(g))
	cmd.AddCommand(StagesCmd(g))
	cmd.AddCommand(TUICmd(g))

	return cmd
}

// setup loads the config, applies flag overrides and initialises logging.
func (g *globals) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(cmd.Context(), g.configPath)
	if err != nil {
		return err
	}

	if g.dataset != "" {
		cfg.DatasetPath = g.dataset
	}
	if g.logFormat != "" {
		cfg.LogFormat = g.logFormat
	}

	level := cfg.LogLevel
	switch {
	case g.logLevel != "":
		level = g.logLevel
	case os.Getenv(config.EnvPrefix+"LOG_LEVEL") == "" && cmd.Annotations[annotationLogLevel] != "":
		level = cmd.Annotations[annotationLogLevel]
	}
	cfg.LogLevel = level

	var out io.Writer = cmd.ErrOrStderr()
	if cmd.Annotations[annotationLogOutput] == logOutputDiscard {
		out = io.Discard
	}
	if err := logger.InitWithOptions(logger.Options{Format: cfg.LogFormat, Output: out}); err != nil {
		return err
	}
	if err := logger.SetLevelString(level); err != nil {
		return err
	}

	if g.noColor {
		color.NoColor = true
	}

	g.cfg = cfg
	return nil
}

// loadService reads the dataset and builds the recommendation service.
func (g *globals) loadService(ctx context.Context) (*service.Service, error) {
	store := repository.NewFileStore(g.cfg.DatasetPath, repository.WithLogger(logger.Named("repository")))

	catalog, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	return service.New(catalog,
		service.WithLogger(logger.Named("service")),
		service.WithSource(store.Source()),
	)
}
