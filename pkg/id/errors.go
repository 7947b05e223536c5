package id

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig matches every *ConfigurationError.
	ErrInvalidConfig = errors.New("invalid generator configuration")
	// ErrClockRegression matches every *ClockRegressionError.
	ErrClockRegression = errors.New("clock moved backwards")
	// ErrTimestampOverflow is returned once the offset from the epoch no
	// longer fits in TimestampBits.
	ErrTimestampOverflow = errors.New("timestamp overflows id layout")
)

// ConfigurationError reports a generator parameter outside its valid range.
// It is fatal: retrying with the same input fails the same way.
type ConfigurationError struct {
	Field string
	Value int64
	Min   int64
	Max   int64
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrInvalidConfig }

// ClockRegressionError is returned by NextID when the clock reads earlier
// than the last issued timestamp. No ID is produced.
type ClockRegressionError struct {
	LastMs  int64
	NowMs   int64
	DriftMs int64
}

func (e *ClockRegressionError) Error() string {
	return fmt.Sprintf("clock moved backwards, refusing to generate id for %d ms", e.DriftMs)
}

func (e *ClockRegressionError) Is(target error) bool { return target == ErrClockRegression }

// ResolutionWarning describes a host identity lookup that failed and was
// replaced by a fallback value. It is logged, never returned.
type ResolutionWarning struct {
	Source   string
	Fallback int64
	Err      error
}

func (w *ResolutionWarning) Error() string {
	return fmt.Sprintf("resolve %s: %v (using %d)", w.Source, w.Err, w.Fallback)
}

func (w *ResolutionWarning) Unwrap() error { return w.Err }
