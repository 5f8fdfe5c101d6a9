package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations
var (
	// ErrCatalogNotLoaded indicates no catalog has been loaded yet
	ErrCatalogNotLoaded = errors.New("catalog not loaded")

	// ErrLoadInProgress indicates a load sequence is already in flight
	ErrLoadInProgress = errors.New("catalog load already in progress")

	// ErrPageOutOfRange indicates a navigation request outside [1, totalPages]
	ErrPageOutOfRange = errors.New("page out of range")
)

// LoadErrorKind classifies a catalog load failure
type LoadErrorKind string

const (
	KindTimeout   LoadErrorKind = "timeout"
	KindNetwork   LoadErrorKind = "network_error"
	KindTransport LoadErrorKind = "transport_error"
	KindFormat    LoadErrorKind = "format_error"
	KindEmpty     LoadErrorKind = "empty_result"
	KindExhausted LoadErrorKind = "all_sources_exhausted"
)

// LoadError is a classified catalog load failure. Source names the data
// source the failure occurred on; Status carries the HTTP status for
// transport failures.
type LoadError struct {
	Kind   LoadErrorKind
	Source string
	Status int
	Err    error
}

// NewLoadError creates a classified load error for a source
func NewLoadError(kind LoadErrorKind, source string, err error) *LoadError {
	return &LoadError{Kind: kind, Source: source, Err: err}
}

// NewTransportError creates a status-derived load error for a source
func NewTransportError(source string, status int) *LoadError {
	return &LoadError{
		Kind:   KindTransport,
		Source: source,
		Status: status,
		Err:    fmt.Errorf("HTTP %d", status),
	}
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Kind)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Message returns the human-readable description shown to the user
func (e *LoadError) Message() string {
	switch e.Kind {
	case KindTimeout:
		return "Request timed out. Please check your connection and try again."
	case KindNetwork:
		return "Network error. Please check your internet connection."
	case KindTransport:
		if e.Status == 404 {
			return "Catalog data file not found on server."
		}
		if e.Status >= 500 {
			return "Server error. Please try again later."
		}
		return fmt.Sprintf("Unexpected server response (HTTP %d).", e.Status)
	case KindFormat:
		return "Data format error. Please try reloading."
	case KindEmpty:
		return "No valid items found in the data."
	case KindExhausted:
		if inner := AsLoadError(e.Err); inner != nil {
			return inner.Message()
		}
		return "All data sources failed. Please try again later."
	}
	return "Failed to load catalog."
}

// AsLoadError unwraps err to a *LoadError, or returns nil
func AsLoadError(err error) *LoadError {
	var le *LoadError
	if errors.As(err, &le) {
		return le
	}
	return nil
}
