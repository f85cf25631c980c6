package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/warrenlab/warren/pkg/errors"
	"github.com/warrenlab/warren/pkg/marketdata"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaults() {
	config, err := Load("")
	suite.Require().NoError(err)

	suite.Equal(marketdata.ProviderDuckDB, config.Provider.Type)
	suite.Equal("data", config.Provider.DataPath)
	suite.Equal(14, config.Indicators.RSIPeriod)
	suite.Equal(24*time.Hour, config.Cache.TTL.Std())
	suite.Equal(":8080", config.Server.Address)
	suite.InDelta(0.4, config.Weights.Technical, 1e-9)
}

func (suite *ConfigTestSuite) TestParseOverridesDefaults() {
	content := []byte(`
provider:
  type: polygon
  api_key: test-key
indicators:
  rsi_period: 21
cache:
  ttl: 1h
server:
  address: ":9090"
`)

	config, err := Parse(content)
	suite.Require().NoError(err)

	suite.Equal(marketdata.ProviderPolygon, config.Provider.Type)
	suite.Equal("test-key", config.Provider.APIKey)
	suite.Equal(21, config.Indicators.RSIPeriod)
	// Untouched fields keep their defaults.
	suite.Equal([]int{20, 50, 200}, config.Indicators.MovingAverageWindows)
	suite.Equal(time.Hour, config.Cache.TTL.Std())
	suite.Equal(":9090", config.Server.Address)
}

func (suite *ConfigTestSuite) TestParseAPIKeyFromEnvironment() {
	suite.T().Setenv("POLYGON_API_KEY", "env-key")

	config, err := Parse([]byte("provider:\n  type: polygon\n"))
	suite.Require().NoError(err)
	suite.Equal("env-key", config.Provider.APIKey)
}

func (suite *ConfigTestSuite) TestParsePolygonWithoutKeyFails() {
	suite.T().Setenv("POLYGON_API_KEY", "")

	_, err := Parse([]byte("provider:\n  type: polygon\n"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestParseInvalidYAML() {
	_, err := Parse([]byte("provider: ["))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestParseInvalidDuration() {
	_, err := Parse([]byte("cache:\n  ttl: soon\n"))
	suite.Error(err)
}

func (suite *ConfigTestSuite) TestParseBadWeights() {
	_, err := Parse([]byte("weights:\n  technical: 0.9\n"))
	suite.Error(err)
}

func (suite *ConfigTestSuite) TestLoadFromFile() {
	path := filepath.Join(suite.T().TempDir(), "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("server:\n  address: \":7070\"\n"), 0o644))

	config, err := Load(path)
	suite.Require().NoError(err)
	suite.Equal(":7070", config.Server.Address)
}

func (suite *ConfigTestSuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}
