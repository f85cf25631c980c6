package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/warrenlab/warren/internal/types"
)

type MemoryCacheTestSuite struct {
	suite.Suite
}

func TestMemoryCacheSuite(t *testing.T) {
	suite.Run(t, new(MemoryCacheTestSuite))
}

func (suite *MemoryCacheTestSuite) TestGetMissingEntry() {
	c := NewMemoryCache(time.Hour)

	_, ok := c.Get("AAPL", time.Now())
	suite.False(ok)
}

func (suite *MemoryCacheTestSuite) TestSetAndGet() {
	c := NewMemoryCache(time.Hour)
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	c.Set("AAPL", day, types.Report{ID: "r1", Ticker: "AAPL"})

	report, ok := c.Get("AAPL", day)
	suite.True(ok)
	suite.Equal("r1", report.ID)
}

func (suite *MemoryCacheTestSuite) TestKeyedByTickerAndDay() {
	c := NewMemoryCache(time.Hour)
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	c.Set("AAPL", day, types.Report{ID: "r1"})

	_, ok := c.Get("MSFT", day)
	suite.False(ok)

	_, ok = c.Get("AAPL", day.AddDate(0, 0, 1))
	suite.False(ok)
}

func (suite *MemoryCacheTestSuite) TestIntradayTimestampsShareEntry() {
	c := NewMemoryCache(time.Hour)
	morning := time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)
	afternoon := time.Date(2024, 6, 3, 15, 45, 0, 0, time.UTC)

	c.Set("AAPL", morning, types.Report{ID: "r1"})

	report, ok := c.Get("AAPL", afternoon)
	suite.True(ok)
	suite.Equal("r1", report.ID)
}

func (suite *MemoryCacheTestSuite) TestTTLEviction() {
	c := NewMemoryCache(time.Hour)
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("AAPL", day, types.Report{ID: "r1"})

	// Still fresh just before expiry.
	c.now = func() time.Time { return base.Add(59 * time.Minute) }
	_, ok := c.Get("AAPL", day)
	suite.True(ok)

	// Expired after the TTL; the entry is dropped on read.
	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, ok = c.Get("AAPL", day)
	suite.False(ok)
	suite.Equal(0, c.Len())
}

func (suite *MemoryCacheTestSuite) TestZeroTTLNeverExpires() {
	c := NewMemoryCache(0)
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("AAPL", day, types.Report{ID: "r1"})

	c.now = func() time.Time { return base.Add(1000 * time.Hour) }
	_, ok := c.Get("AAPL", day)
	suite.True(ok)
}

func (suite *MemoryCacheTestSuite) TestPurge() {
	c := NewMemoryCache(time.Hour)
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	c.Set("AAPL", day, types.Report{ID: "r1"})
	c.Set("MSFT", day, types.Report{ID: "r2"})
	suite.Equal(2, c.Len())

	c.Purge()
	suite.Equal(0, c.Len())

	_, ok := c.Get("AAPL", day)
	suite.False(ok)
}
