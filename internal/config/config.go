package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Logging  LoggingConfig  `mapstructure:"logging"  validate:"required"`
}

// DatabaseConfig contains all storage-related configuration settings.
type DatabaseConfig struct {
	// Path is the SQLite database file; ":memory:" is accepted for throwaway runs.
	Path string `mapstructure:"path" validate:"required"`

	// ResetCollectionsOnInit wipes every collection (and, by cascade, every
	// collection membership) during startup initialization. Words, review
	// stats, and session history are untouched. Defaults to false: startup is
	// purely additive unless this is explicitly enabled.
	ResetCollectionsOnInit bool `mapstructure:"reset_collections_on_init"`
}

// LoggingConfig contains logging configuration settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}
