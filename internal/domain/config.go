package domain

// Config represents the main application configuration
type Config struct {
	Reference ReferenceConfig `mapstructure:"reference"`
	Layout    LayoutConfig    `mapstructure:"layout"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Export    ExportConfig    `mapstructure:"export"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// Reference data sources
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
)

// ReferenceConfig selects where the reference tables are read from.
type ReferenceConfig struct {
	Source string `mapstructure:"source"` // embedded, file, sqlite
	Path   string `mapstructure:"path"`   // YAML file or SQLite catalog path
}

// LayoutConfig drives initial node placement and the force simulation settings.
type LayoutConfig struct {
	Seed   uint64  `mapstructure:"seed"` // 0 seeds from the clock
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
	Extent float64 `mapstructure:"extent"` // initial positions fall in [-extent, extent)
}

// CacheConfig sizes the in-memory view caches
type CacheConfig struct {
	MaxItems int `mapstructure:"max_items"`
}

// ExportConfig represents export output configuration
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
