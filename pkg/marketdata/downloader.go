package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/warrenlab/warren/internal/logger"
	"github.com/warrenlab/warren/pkg/errors"
	"github.com/warrenlab/warren/pkg/marketdata/writer"
)

// Downloader pulls daily bars from a provider and stores them as per-ticker
// Parquet files, ready for the duckdb provider to serve offline.
type Downloader struct {
	provider Provider
	logger   *logger.Logger
	// newWriter is swappable in tests.
	newWriter func(outputPath string) writer.BarWriter
}

// NewDownloader creates a downloader writing through the DuckDB bar writer.
func NewDownloader(provider Provider, log *logger.Logger) *Downloader {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Downloader{
		provider:  provider,
		logger:    log,
		newWriter: writer.NewDuckDBWriter,
	}
}

// Download fetches the trailing period of daily bars for ticker and writes
// them to <dataPath>/<ticker>.parquet, returning the written path.
func (d *Downloader) Download(ctx context.Context, ticker string, period Period, dataPath string) (path string, err error) {
	series, err := d.provider.GetHistoricalData(ctx, ticker, period)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to create data directory", err)
	}

	w := d.newWriter(filepath.Join(dataPath, ticker+".parquet"))

	if err := w.Initialize(); err != nil {
		return "", err
	}

	defer func() {
		if cerr := w.Close(); cerr != nil {
			if err == nil {
				err = cerr
			} else {
				d.logger.Warn("error closing writer after another error", zap.Error(cerr))
			}
		}
	}()

	bar := progressbar.NewOptions(len(series),
		progressbar.OptionSetDescription(fmt.Sprintf("Writing %s", ticker)),
		progressbar.OptionShowCount(),
	)

	for _, point := range series {
		if err := w.Write(ticker, point); err != nil {
			return "", err
		}

		bar.Add(1)
	}

	path, err = w.Finalize()
	if err != nil {
		return "", err
	}

	d.logger.Info("downloaded daily bars",
		zap.String("ticker", ticker),
		zap.Int("bars", len(series)),
		zap.String("path", path),
	)

	return path, nil
}
