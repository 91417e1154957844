// Package errors provides the error kinds used across mapgallery. Every
// failure that crosses a package boundary is an ApplicationError (or one of
// its typed wrappers) so callers can branch on Kind instead of on messages.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Folder and file error kinds
	FolderNotFound
	FolderUnreadable
	FileNotFound
	FileCreateFailed
	ImageDecodeFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Download error kinds
	DownloadFailed
	// Controller error kinds
	Busy
	// Database error kinds
	DatabaseOperationFailed
	InvalidInputData
)

var kindNames = map[ErrorKind]string{
	Unknown:                 "unknown",
	FolderNotFound:          "folder not found",
	FolderUnreadable:        "folder unreadable",
	FileNotFound:            "file not found",
	FileCreateFailed:        "file create failed",
	ImageDecodeFailed:       "image decode failed",
	InvalidConfig:           "invalid config",
	ConfigNotFound:          "config not found",
	DownloadFailed:          "download failed",
	Busy:                    "busy",
	DatabaseOperationFailed: "database operation failed",
	InvalidInputData:        "invalid input",
}

// String returns a human readable kind name
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Common error constants for frequently occurring errors
var (
	ErrBusy          = &ApplicationError{msg: "a rescan is already running", kind: Busy}
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// kinded is satisfied by every error type of this package.
type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first application error in err's chain,
// or Unknown.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsKind reports whether any error in err's chain has the given kind.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// FileError represents errors related to folder and file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// DownloadError represents a failed preview download
type DownloadError struct {
	ApplicationError
	url string
}

// NewDownloadError creates a new download error. url may be empty when the
// failure is not tied to a single preview.
func NewDownloadError(msg string, url string, err error) *DownloadError {
	return &DownloadError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: DownloadFailed,
		},
		url: url,
	}
}

// Error returns the download error message
func (e *DownloadError) Error() string {
	if e.url != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.url, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.url)
	}
	return e.ApplicationError.Error()
}

// URL returns the URL associated with the error
func (e *DownloadError) URL() string {
	return e.url
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsFolderNotFound checks if the error is a missing folder error
func IsFolderNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FolderNotFound
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsDownloadError checks if the error is a download error
func IsDownloadError(err error) bool {
	var dlErr *DownloadError
	return errors.As(err, &dlErr)
}

// IsBusy checks if the error reports a rescan already in progress
func IsBusy(err error) bool {
	return IsKind(err, Busy)
}

// DatabaseError represents errors related to database operations
type DatabaseError struct {
	ApplicationError
	operation string
	context   map[string]interface{}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(msg string, err error) *DatabaseError {
	return &DatabaseError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: DatabaseOperationFailed,
		},
		operation: "",
		context:   make(map[string]interface{}),
	}
}

// WithOperation adds operation information to the database error
func (e *DatabaseError) WithOperation(operation string) *DatabaseError {
	e.operation = operation
	return e
}

// WithContext adds context information to the database error
func (e *DatabaseError) WithContext(key string, value interface{}) *DatabaseError {
	e.context[key] = value
	return e
}

// Error returns the database error message
func (e *DatabaseError) Error() string {
	if e.operation != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: operation=%s: %v", e.msg, e.operation, e.err)
		}
		return fmt.Sprintf("%s: operation=%s", e.msg, e.operation)
	}
	return e.ApplicationError.Error()
}

// Operation returns the database operation associated with the error
func (e *DatabaseError) Operation() string {
	return e.operation
}

// Context returns the context information associated with the error
func (e *DatabaseError) Context() map[string]interface{} {
	return e.context
}

// InvalidInputError represents errors related to invalid input data
type InvalidInputError struct {
	ApplicationError
	context map[string]interface{}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(msg string, err error) *InvalidInputError {
	return &InvalidInputError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidInputData,
		},
		context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the invalid input error
func (e *InvalidInputError) WithContext(key string, value interface{}) *InvalidInputError {
	e.context[key] = value
	return e
}

// Context returns the context information associated with the error
func (e *InvalidInputError) Context() map[string]interface{} {
	return e.context
}

// IsDatabaseError checks if the error is a database error
func IsDatabaseError(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr)
}

// IsInvalidInputError checks if the error is an invalid input error
func IsInvalidInputError(err error) bool {
	var inputErr *InvalidInputError
	return errors.As(err, &inputErr)
}
