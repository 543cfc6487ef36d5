package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pathogen-atlas/internal/domain"
)

// Manager loads the atlas configuration using Viper
type Manager struct {
	v          *viper.Viper
	configPath string
	config     *domain.Config
}

// NewManager creates a new configuration manager. An empty configPath searches the
// default locations for atlas.yaml.
func NewManager(configPath string) (*Manager, error) {
	m := &Manager{configPath: configPath}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	v := viper.New()

	if m.configPath != "" {
		v.SetConfigFile(m.configPath)
	} else {
		v.SetConfigName("atlas")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pathogen-atlas"))
		}
	}

	// Set environment variable prefix and enable automatic env binding
	v.SetEnvPrefix("ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read configuration file (optional unless a path was given)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if m.configPath != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.v = v
	m.config = config
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Reference data defaults
	v.SetDefault("reference.source", domain.SourceEmbedded)
	v.SetDefault("reference.path", "")

	// Layout defaults
	v.SetDefault("layout.seed", 0)
	v.SetDefault("layout.width", 800)
	v.SetDefault("layout.height", 600)
	v.SetDefault("layout.extent", 200)

	// Cache defaults
	v.SetDefault("cache.max_items", 128)

	// Export defaults
	homeDir, _ := os.UserHomeDir()
	v.SetDefault("export.dir", filepath.Join(homeDir, ".pathogen-atlas", "exports"))

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// ConfigFileUsed returns the file the configuration was read from, or "" when only
// defaults and environment variables applied.
func (m *Manager) ConfigFileUsed() string {
	return m.v.ConfigFileUsed()
}

// Reload reloads the configuration
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	switch config.Reference.Source {
	case domain.SourceEmbedded:
	case domain.SourceFile, domain.SourceSQLite:
		if config.Reference.Path == "" {
			return domain.NewValidationError("reference.path", "path is required for source "+config.Reference.Source, config.Reference.Path)
		}
	default:
		return domain.NewValidationError("reference.source", "must be one of embedded, file, sqlite", config.Reference.Source)
	}

	if config.Layout.Width <= 0 {
		return domain.NewValidationError("layout.width", "must be positive", config.Layout.Width)
	}
	if config.Layout.Height <= 0 {
		return domain.NewValidationError("layout.height", "must be positive", config.Layout.Height)
	}
	if config.Layout.Extent <= 0 {
		return domain.NewValidationError("layout.extent", "must be positive", config.Layout.Extent)
	}

	if config.Cache.MaxItems <= 0 {
		return domain.NewValidationError("cache.max_items", "must be positive", config.Cache.MaxItems)
	}

	// Validate logging configuration
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return domain.NewValidationError("logging.level", "invalid log level", config.Logging.Level)
	}
	if f := strings.ToLower(config.Logging.Format); f != "json" && f != "text" {
		return domain.NewValidationError("logging.format", "must be json or text", config.Logging.Format)
	}

	return nil
}

// EnsureExportDir creates the export directory if it doesn't exist.
func (m *Manager) EnsureExportDir() error {
	return os.MkdirAll(m.config.Export.Dir, 0755)
}
