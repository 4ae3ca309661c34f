package ports

import (
	"errors"
	"fmt"
)

// Common infrastructure errors that can occur while loading data or
// writing reports.
var (
	// ErrSourceNotFound indicates that a dataset source does not exist.
	ErrSourceNotFound = errors.New("source not found")

	// ErrMalformedSource indicates that a dataset source could not be decoded.
	ErrMalformedSource = errors.New("malformed source")

	// ErrUnsupportedFormat indicates that a report format is not supported.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrConfigNotFound indicates that required configuration is missing.
	ErrConfigNotFound = errors.New("configuration not found")
)

// LoadError represents an error from a dataset loader.
// It includes the source and collection that failed.
type LoadError struct {
	// Source is the file, directory or URL being loaded.
	Source string

	// Collection is the collection being decoded, if known.
	Collection string

	// Err is the underlying error that occurred.
	Err error
}

// Error implements the error interface for LoadError.
func (e *LoadError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("load error: source=%s, collection=%s, err=%v", e.Source, e.Collection, e.Err)
	}
	return fmt.Sprintf("load error: source=%s, err=%v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error { return e.Err }

// NewLoadError creates a new LoadError with the given details.
func NewLoadError(source, collection string, err error) *LoadError {
	return &LoadError{
		Source:     source,
		Collection: collection,
		Err:        err,
	}
}

// WriteError represents an error from a report writer.
type WriteError struct {
	// Format is the output format being written.
	Format string

	// Err is the underlying error that caused the write to fail.
	Err error
}

// Error implements the error interface for WriteError.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write error: format=%s, err=%v", e.Format, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error { return e.Err }

// NewWriteError creates a new WriteError with the given details.
func NewWriteError(format string, err error) *WriteError {
	return &WriteError{
		Format: format,
		Err:    err,
	}
}

// ConfigError represents an error from configuration operations.
type ConfigError struct {
	// ConfigKey is the configuration key that was involved in the failed
	// operation.
	ConfigKey string

	// Err is the underlying error that caused the configuration operation
	// to fail.
	Err error
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: key=%s, err=%v", e.ConfigKey, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a new ConfigError with the given details.
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{
		ConfigKey: key,
		Err:       err,
	}
}
