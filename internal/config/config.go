// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Default configuration values.
const (
	DefaultLogLevel       = "INFO"
	DefaultRetentionLimit = 5
	DefaultUploadSubdir   = "uploads"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	dataDir           string
	dbURL             string
	logLevel          string
	logFormat         LogFormat
	retentionLimit    int
	columnAliasesFile string
	enableReset       bool
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".plantfeed"
	}
	return filepath.Join(home, ".plantfeed")
}

// DefaultUploadDir returns the default upload directory for a given data directory.
func DefaultUploadDir(dataDir string) string {
	return filepath.Join(dataDir, DefaultUploadSubdir)
}

// PrepareDataDir creates the data directory if it does not exist and returns it.
func PrepareDataDir(dataDir string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dataDir, nil
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		dataDir:        dataDir,
		dbURL:          "sqlite:///" + filepath.Join(dataDir, "plantfeed.db"),
		logLevel:       DefaultLogLevel,
		logFormat:      LogFormatPretty,
		retentionLimit: DefaultRetentionLimit,
	}
}

// DataDir returns the data directory.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// RetentionLimit returns the number of batches kept per owner.
func (c AppConfig) RetentionLimit() int { return c.retentionLimit }

// ColumnAliasesFile returns the path to a YAML file with extra column aliases.
func (c AppConfig) ColumnAliasesFile() string { return c.columnAliasesFile }

// EnableReset reports whether the destructive clear-all operation is allowed.
func (c AppConfig) EnableReset() bool { return c.enableReset }

// UploadDir returns the directory for stored batch artifacts.
func (c AppConfig) UploadDir() string {
	return DefaultUploadDir(c.dataDir)
}

// EnsureDataDir creates the data directory if missing.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// EnsureUploadDir creates the upload directory if missing.
func (c AppConfig) EnsureUploadDir() error {
	return os.MkdirAll(c.UploadDir(), 0o755)
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		// Update default DB URL when data dir changes
		if c.dbURL == "" || strings.Contains(c.dbURL, "plantfeed.db") {
			c.dbURL = "sqlite:///" + filepath.Join(dir, "plantfeed.db")
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithRetentionLimit sets the per-owner batch retention limit.
func WithRetentionLimit(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.retentionLimit = n
		}
	}
}

// WithColumnAliasesFile sets the path for extra column alias configuration.
func WithColumnAliasesFile(path string) AppConfigOption {
	return func(c *AppConfig) { c.columnAliasesFile = path }
}

// WithEnableReset allows the destructive clear-all operation.
// WARNING: For testing and development only.
func WithEnableReset(enabled bool) AppConfigOption {
	return func(c *AppConfig) { c.enableReset = enabled }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Credentials in the database URL are masked.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("upload_dir", c.UploadDir()),
		slog.String("log_level", c.logLevel),
		slog.String("db_url", c.maskedDBURL()),
		slog.Int("retention_limit", c.retentionLimit),
		slog.Bool("enable_reset", c.enableReset),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	at := strings.LastIndex(c.dbURL, "@")
	if at == -1 {
		return c.dbURL
	}
	scheme := strings.Index(c.dbURL, "://")
	if scheme == -1 {
		return c.dbURL
	}
	return c.dbURL[:scheme+3] + "***" + c.dbURL[at:]
}
