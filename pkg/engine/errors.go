package engine

import (
	"context"
	"errors"
	"strings"

	"tradegraph/pkg/store"
)

// Error type constants for classification.
const (
	ErrTypeParse    = "parse"
	ErrTypeData     = "data"
	ErrTypeStorage  = "storage"
	ErrTypeCanceled = "canceled"
	ErrTypeUnknown  = "unknown"
)

// ClassifyError inspects an error and returns its type classification.
// This enables grouping errors by category in metrics and traces.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrTypeCanceled
	}

	var parseErr *store.ParseError
	if errors.As(err, &parseErr) {
		return ErrTypeParse
	}

	if errors.Is(err, store.ErrClosed) {
		return ErrTypeStorage
	}

	errStrLower := strings.ToLower(err.Error())

	// Storage backend failures (SQLite, file I/O during save).
	if strings.Contains(errStrLower, "sql") ||
		strings.Contains(errStrLower, "database") ||
		strings.Contains(errStrLower, "persist") ||
		strings.Contains(errStrLower, "no such file") {
		return ErrTypeStorage
	}

	// Data-shape problems surfaced as errors rather than skips.
	if strings.Contains(errStrLower, "invalid") ||
		strings.Contains(errStrLower, "missing") ||
		strings.Contains(errStrLower, "not an integer") ||
		strings.Contains(errStrLower, "not a number") {
		return ErrTypeData
	}

	return ErrTypeUnknown
}
