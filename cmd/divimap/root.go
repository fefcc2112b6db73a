package main

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sant0-9/divimap/internal/config"
	"github.com/sant0-9/divimap/internal/geo"
	"github.com/sant0-9/divimap/internal/intent"
	"github.com/sant0-9/divimap/internal/llm"
	"github.com/sant0-9/divimap/internal/logger"
	"github.com/sant0-9/divimap/internal/mapview"
	"github.com/sant0-9/divimap/internal/session"
	"github.com/sant0-9/divimap/internal/tui"
)

var (
	flagDataset  string
	flagProvider string
	flagModel    string
	flagTimeout  time.Duration
	flagLogLevel string

	cfg      *config.Config
	cfgFound bool
)

var rootCmd = &cobra.Command{
	Use:     "divimap",
	Short:   "Select Colombian municipalities on a map with natural-language instructions",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, cfgFound, err = config.Resolve()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("dataset") {
			cfg.Dataset = flagDataset
		}
		if flags.Changed("provider") {
			cfg.Provider = flagProvider
		}
		if flags.Changed("model") {
			cfg.Model = flagModel
		}
		if flags.Changed("timeout") {
			cfg.Timeout = flagTimeout
		}
		if flags.Changed("log-level") {
			cfg.Log.Level = flagLogLevel
		}
		return nil
	},
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDataset, "dataset", "", "GeoJSON FeatureCollection of municipalities (default: bundled sample)")
	pf.StringVar(&flagProvider, "provider", "", "Completion provider: openrouter, openai, groq, ollama, custom")
	pf.StringVar(&flagModel, "model", "", "Model name passed to the provider")
	pf.DurationVar(&flagTimeout, "timeout", intent.DefaultTimeout, "Per-instruction completion timeout")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error, off")
}

func runTUI(cmd *cobra.Command, args []string) error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	f, err := logger.OpenFile(dir)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	log := buildLogger("tui", f)
	features, err := loadFeatures(cfg, &log)
	if err != nil {
		return err
	}

	app := tui.NewApp(cfg, needsSetup(), features, &log)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}

// needsSetup reports whether the provider wizard should run first.
func needsSetup() bool {
	if cfgFound || cfg.APIKey != "" {
		return false
	}
	p := config.GetProvider(cfg.Provider)
	return p == nil || p.NeedsAPIKey
}

func buildLogger(component string, out io.Writer) zerolog.Logger {
	return logger.Build(logger.Config{
		Level:     cfg.Log.Level,
		Console:   cfg.Log.Console,
		Component: component,
	}, out)
}

func loadFeatures(cfg *config.Config, log *zerolog.Logger) (*geo.Collection, error) {
	if cfg.Dataset == "" {
		c := geo.Sample()
		log.Info().Int("features", c.Len()).Msg("using bundled sample layer")
		return c, nil
	}
	c, err := geo.LoadFile(cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	log.Info().Str("path", cfg.Dataset).Int("features", c.Len()).Msg("dataset loaded")
	return c, nil
}

// newSession wires provider, interpreter and applicator without contacting
// the provider.
func newSession(cfg *config.Config, features *geo.Collection, log *zerolog.Logger) (*session.Session, error) {
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	interp := intent.NewInterpreter(provider, cfg.Model,
		intent.WithTimeout(cfg.Timeout),
		intent.WithLogger(log),
	)
	applier := mapview.NewApplicator(features, mapview.WithZoom(cfg.Zoom))
	return session.New(interp, applier, session.WithLogger(log)), nil
}
