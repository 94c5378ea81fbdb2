package models

// Configuration models

// Config holds counter store configuration
type Config struct {
	Provider string            // memory, file, sqlite, postgres, mongodb, redis
	URI      string            // Connection URI or path
	Database string            // Database name, collection prefix or key prefix
	Options  map[string]string // Provider-specific options
}
