// Package writer persists downloaded daily bars to local storage.
package writer

import (
	"github.com/warrenlab/warren/internal/types"
)

// BarWriter defines the interface for writing daily bars to a destination.
type BarWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single daily bar for the given ticker.
	Write(ticker string, point types.PricePoint) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}
