package errors

import (
	"errors"
	"fmt"
)

// Sentinel causes so callers can distinguish error kinds via errors.Is
// without string matching.
var (
	ErrMissingField         = errors.New("missing required field")
	ErrInvalidEnumValue     = errors.New("invalid enum value")
	ErrInvalidVocabTreePath = errors.New("invalid vocab tree path")
	ErrStageFailed          = errors.New("stage failed")
)

// Convenience constructors for common error patterns.

// Config errors

// ConfigNotFound reports a missing configuration file.
func ConfigNotFound(path string) *PreperError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

// MissingField reports a required configuration key with no default that is
// absent from the configuration file.
func MissingField(field string) *PreperError {
	return Wrap(ErrMissingField, CategoryConfig, SeverityFatal,
		fmt.Sprintf("required field [%s] missing from configuration", field)).
		WithContext("field", field)
}

// InvalidEnumValue reports a configuration value outside its closed set. The
// message names the field, the offending value, and the allowed set.
func InvalidEnumValue(field, value string, allowed []string) *PreperError {
	return Wrap(ErrInvalidEnumValue, CategoryValidation, SeverityFatal,
		fmt.Sprintf("invalid value <%s> for field [%s], allowed values are %v", value, field, allowed)).
		WithContext("field", field).
		WithContext("value", value).
		WithContext("allowed", allowed)
}

// InvalidVocabTreePath reports a missing or malformed vocabulary-tree path
// when the configured matching method requires one.
func InvalidVocabTreePath(path, reason string) *PreperError {
	return Wrap(ErrInvalidVocabTreePath, CategoryValidation, SeverityFatal, reason).
		WithContext("path", path)
}

// Pipeline errors

// StageFailed wraps a non-zero exit from an external tool invocation.
func StageFailed(stage string, cause error) *PreperError {
	return Wrap(cause, CategoryStage, SeverityFatal, "stage execution failed").
		WithContext("stage", stage)
}

// OutputDirError reports a failure creating the sparse output directory.
func OutputDirError(dir string, cause error) *PreperError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output directory creation failed").
		WithContext("dir", dir)
}

// Asset errors

// DownloadError wraps a vocabulary-tree asset fetch failure.
func DownloadError(url string, cause error) *PreperError {
	return Wrap(cause, CategoryNetwork, SeverityFatal, "asset download failed").
		WithContext("url", url)
}

// DatabaseError wraps a failure reading the COLMAP feature database.
func DatabaseError(path string, cause error) *PreperError {
	return Wrap(cause, CategoryDatabase, SeverityError, "feature database read failed").
		WithContext("path", path)
}
