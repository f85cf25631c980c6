package writer

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/warrenlab/warren/internal/types"
)

type DuckDBWriterTestSuite struct {
	suite.Suite
	tempDir string
}

func TestDuckDBWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBWriterTestSuite))
}

func (suite *DuckDBWriterTestSuite) SetupSuite() {
	tempDir, err := os.MkdirTemp("", "duckdb-writer-test")
	suite.Require().NoError(err)
	suite.tempDir = tempDir
}

func (suite *DuckDBWriterTestSuite) TearDownSuite() {
	if suite.tempDir != "" {
		os.RemoveAll(suite.tempDir)
	}
}

func (suite *DuckDBWriterTestSuite) bar(day int, close float64) types.PricePoint {
	return types.PricePoint{
		Date:   time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Open:   close - 1,
		High:   close + 2,
		Low:    close - 2,
		Close:  close,
		Volume: 1000000,
	}
}

func (suite *DuckDBWriterTestSuite) TestNewDuckDBWriter() {
	outputPath := suite.tempDir + "/test.parquet"
	writer := NewDuckDBWriter(outputPath)

	suite.NotNil(writer)
	suite.Equal(outputPath, writer.GetOutputPath())

	duckWriter, ok := writer.(*DuckDBWriter)
	suite.True(ok)
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
	suite.Nil(duckWriter.stmt)
}

func (suite *DuckDBWriterTestSuite) TestWriteWithoutInitialize() {
	writer := NewDuckDBWriter(suite.tempDir + "/test_no_init.parquet")

	err := writer.Write("AAPL", suite.bar(2, 150))
	suite.Error(err)
}

func (suite *DuckDBWriterTestSuite) TestFinalizeWithoutInitialize() {
	writer := NewDuckDBWriter(suite.tempDir + "/test_no_init_finalize.parquet")

	_, err := writer.Finalize()
	suite.Error(err)
}

func (suite *DuckDBWriterTestSuite) TestWriteAndFinalize() {
	outputPath := suite.tempDir + "/test_roundtrip.parquet"
	writer := NewDuckDBWriter(outputPath)

	suite.Require().NoError(writer.Initialize())

	defer writer.Close()

	// Write out of date order, export should sort.
	suite.Require().NoError(writer.Write("AAPL", suite.bar(3, 152)))
	suite.Require().NoError(writer.Write("AAPL", suite.bar(2, 150)))
	suite.Require().NoError(writer.Write("AAPL", suite.bar(4, 154)))

	path, err := writer.Finalize()
	suite.Require().NoError(err)
	suite.Equal(outputPath, path)

	_, err = os.Stat(path)
	suite.NoError(err)

	db, err := sql.Open("duckdb", ":memory:")
	suite.Require().NoError(err)

	defer db.Close()

	rows, err := db.Query(`SELECT ticker, close FROM read_parquet('` + path + `') ORDER BY date`)
	suite.Require().NoError(err)

	defer rows.Close()

	var closes []float64

	for rows.Next() {
		var (
			ticker     string
			closePrice float64
		)

		suite.Require().NoError(rows.Scan(&ticker, &closePrice))
		suite.Equal("AAPL", ticker)
		closes = append(closes, closePrice)
	}

	suite.Require().NoError(rows.Err())
	suite.Equal([]float64{150, 152, 154}, closes)
}

func (suite *DuckDBWriterTestSuite) TestCloseIsIdempotent() {
	writer := NewDuckDBWriter(suite.tempDir + "/test_close.parquet")

	suite.Require().NoError(writer.Initialize())
	suite.NoError(writer.Close())
	suite.NoError(writer.Close())
}
