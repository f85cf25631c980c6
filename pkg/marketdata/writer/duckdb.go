package writer

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/warrenlab/warren/internal/types"
	"github.com/warrenlab/warren/pkg/errors"
)

// DuckDBWriter buffers daily bars in an in-memory DuckDB table and exports
// them to a single Parquet file on Finalize.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
}

// NewDuckDBWriter creates a writer exporting to the given Parquet file path.
func NewDuckDBWriter(outputPath string) BarWriter {
	return &DuckDBWriter{
		outputPath: outputPath,
	}
}

// Initialize opens the in-memory database, creates the staging table, begins
// a transaction and prepares the insert statement.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to open duckdb connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_bars (
			id TEXT,
			date TIMESTAMP,
			ticker TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume BIGINT
		)
	`)
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create staging table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO daily_bars (id, date, ticker, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to prepare insert statement", err)
	}

	return nil
}

// Write persists a single daily bar within the open transaction.
func (w *DuckDBWriter) Write(ticker string, point types.PricePoint) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeWriteFailed, "writer not initialized")
	}

	_, err := w.stmt.Exec(
		uuid.New().String(),
		point.Date,
		ticker,
		point.Open,
		point.High,
		point.Low,
		point.Close,
		point.Volume,
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to insert bar", err)
	}

	return nil
}

// Finalize commits the transaction and exports the staged bars to Parquet,
// sorted by date.
func (w *DuckDBWriter) Finalize() (outputPath string, err error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeWriteFailed, "writer not initialized or already finalized")
	}

	if err = w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	_, err = w.db.Exec(fmt.Sprintf(
		`COPY (SELECT date, ticker, open, high, low, close, volume FROM daily_bars ORDER BY date) TO '%s' (FORMAT PARQUET)`,
		w.outputPath,
	))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to export parquet file", err)
	}

	return w.outputPath, nil
}

// Close releases the statement, rolls back any open transaction and closes
// the database connection.
func (w *DuckDBWriter) Close() error {
	var closeErr error

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErr = errors.Wrap(errors.ErrCodeWriteFailed, "failed to close statement", err)
		}

		w.stmt = nil
	}

	if w.tx != nil {
		w.tx.Rollback()
		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil && closeErr == nil {
			closeErr = errors.Wrap(errors.ErrCodeWriteFailed, "failed to close db connection", err)
		}

		w.db = nil
	}

	return closeErr
}

// GetOutputPath returns the configured Parquet file path.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}
