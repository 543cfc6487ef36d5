package main

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pathogen-atlas/internal/config"
	"github.com/pathogen-atlas/internal/domain"
	"github.com/pathogen-atlas/internal/logging"
	"github.com/pathogen-atlas/internal/service"
)

var (
	// configFlag is the CLI --config flag value
	configFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Pathogen Atlas - antibiotic effectiveness explorer",
	Long: `Pathogen Atlas builds a pathogen/antibiotic network graph and an effectiveness
matrix from reference tables and answers queries over them.

Reference tables come from the embedded dataset, a YAML file or a SQLite catalog,
selected with reference.source in atlas.yaml or ATLAS_REFERENCE_SOURCE.
All commands print JSON on stdout and log on stderr.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: search ./atlas.yaml, ./config, ~/.pathogen-atlas)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override logging.level (debug, info, warn, error)")
}

// loadConfig reads configuration and applies CLI overrides. Logs go to the command's
// error stream.
func loadConfig(cmd *cobra.Command) (*config.Manager, *logrus.Logger, error) {
	mgr, err := config.NewManager(configFlag)
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	cfg := mgr.GetConfig()
	if logLevelFlag != "" {
		cfg.Logging.Level = logLevelFlag
	}
	if err := mgr.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if used := mgr.ConfigFileUsed(); used != "" {
		logger.WithField("config_file", used).Debug("Loaded configuration file")
	}
	return mgr, logger, nil
}

// loadDataset reads the configured reference tables.
func loadDataset(cmd *cobra.Command, cfg *domain.Config, logger *logrus.Logger) (*domain.Dataset, error) {
	ds, err := service.LoadDataset(cmd.Context(), cfg.Reference, logger)
	if err != nil {
		return nil, fmt.Errorf("loading reference data: %w", err)
	}
	return ds, nil
}

// newAtlas builds the atlas service from configuration.
func newAtlas(cmd *cobra.Command) (*service.Atlas, *config.Manager, *logrus.Logger, error) {
	mgr, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg := mgr.GetConfig()

	ds, err := loadDataset(cmd, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	atlas, err := service.NewAtlas(ds, service.AtlasConfig{
		Layout:   cfg.Layout,
		MaxItems: cfg.Cache.MaxItems,
	}, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building atlas: %w", err)
	}
	return atlas, mgr, logger, nil
}

// printJSON writes v as indented JSON to the command's output stream.
func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// asEnum converts flag values to a typed whitelist.
func asEnum[T ~string](values []string) []T {
	out := make([]T, 0, len(values))
	for _, v := range values {
		out = append(out, T(v))
	}
	return out
}
