package dlmeta

import (
	"errors"
	"fmt"

	"github.com/cybergodev/dlmeta/internal"
)

// Error definitions for the `cybergodev/dlmeta` package.
var (
	// ErrInputTooLarge is returned when input exceeds MaxInputSize.
	ErrInputTooLarge = errors.New("dlmeta: input size exceeds maximum")

	// ErrInvalidHTML is returned when HTML parsing fails.
	ErrInvalidHTML = errors.New("dlmeta: invalid HTML")

	// ErrMaxDepthExceeded is returned when HTML nesting exceeds MaxDepth.
	ErrMaxDepthExceeded = errors.New("dlmeta: max depth exceeded")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("dlmeta: invalid config")

	// ErrFileNotFound is returned when the input file does not exist.
	ErrFileNotFound = errors.New("dlmeta: file not found")

	// ErrInvalidFilePath is returned when file path validation fails.
	ErrInvalidFilePath = errors.New("dlmeta: invalid file path")

	// ErrInvalidFormat is returned for an unknown output format.
	ErrInvalidFormat = errors.New("dlmeta: invalid output format")

	// ErrInvalidEncoding is returned when input bytes do not decode under the configured charset.
	ErrInvalidEncoding = errors.New("dlmeta: input does not decode under the configured charset")

	// ErrMissingCell is returned when a matching row has fewer cells than the layout needs.
	ErrMissingCell = internal.ErrMissingCell

	// ErrMissingButton is returned when the file name cell holds no button element.
	ErrMissingButton = internal.ErrMissingButton

	// ErrInvalidFileName is returned when a file name has fewer than three dash-separated segments.
	ErrInvalidFileName = internal.ErrInvalidFileName
)

// RowError reports a malformed data row. Row is the 1-based position among
// the data rows, header excluded.
type RowError struct {
	Row      int
	Platform string
	Err      error
}

func (e *RowError) Error() string {
	if e.Platform != "" {
		return fmt.Sprintf("row %d (%s): %v", e.Row, e.Platform, e.Err)
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
