package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrPackageLoad ErrorType = iota
	ErrDatabaseRead
	ErrDatabaseWrite
	ErrVerify
	ErrSigning
	ErrNotFound
	ErrLocked
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrPackageLoad:
		return "PackageLoad"
	case ErrDatabaseRead:
		return "DatabaseRead"
	case ErrDatabaseWrite:
		return "DatabaseWrite"
	case ErrVerify:
		return "Verify"
	case ErrSigning:
		return "Signing"
	case ErrNotFound:
		return "NotFound"
	case ErrLocked:
		return "Locked"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// RepoError represents an error during repository management
type RepoError struct {
	Type    ErrorType
	Package string
	Err     error
}

// Error implements the error interface
func (e *RepoError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Package, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *RepoError) Unwrap() error {
	return e.Err
}
