package plantfeed

import (
	"github.com/plantfeed/plantfeed/internal/config"
	"github.com/plantfeed/plantfeed/internal/log"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	dataDir           string
	dbURL             string
	retentionLimit    int
	columnAliasesFile string
	enableReset       bool
	logger            *log.Logger
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		dataDir:        config.DefaultDataDir(),
		retentionLimit: config.DefaultRetentionLimit,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite stores data in a SQLite file at the given path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = "sqlite:///" + path
	}
}

// WithPostgres stores data in PostgreSQL.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = dsn
	}
}

// WithDataDir sets the directory for the database file and stored artifacts.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithRetentionLimit sets how many batches each owner keeps. Values below one
// are ignored.
func WithRetentionLimit(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.retentionLimit = n
		}
	}
}

// WithColumnAliases extends the compiled-in column alias table from a YAML
// file.
func WithColumnAliases(path string) Option {
	return func(c *clientConfig) {
		c.columnAliasesFile = path
	}
}

// WithEnableReset enables the destructive Admin.Reset operation.
func WithEnableReset() Option {
	return func(c *clientConfig) {
		c.enableReset = true
	}
}

// WithLogger sets the logger. Defaults to a pretty terminal logger at INFO.
func WithLogger(logger *log.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithConfig applies an assembled AppConfig, typically loaded from the
// environment, as the base configuration.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.dataDir = cfg.DataDir()
		c.dbURL = cfg.DBURL()
		c.retentionLimit = cfg.RetentionLimit()
		c.columnAliasesFile = cfg.ColumnAliasesFile()
		c.enableReset = cfg.EnableReset()
	}
}
