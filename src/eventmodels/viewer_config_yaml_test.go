package eventmodels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadViewerConfigYAML(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, `
provider: tradier
price_history_source: polygon
extended_columns: false
timezone: America/Chicago
max_maturity_index: 6
defaults:
  ticker: msft
  option_type: put
  maturity_index: 8
`)

		config, err := LoadViewerConfigYAML(path)
		require.NoError(t, err)

		assert.Equal(t, ProviderTradier, config.GetProvider())
		assert.Equal(t, PriceHistorySourcePolygon, config.GetPriceHistorySource())
		assert.False(t, config.GetExtendedColumns())
		assert.Equal(t, "America/Chicago", config.GetTimezone())
		assert.Equal(t, 6, config.GetMaxMaturityIndex())

		// the default index is clamped to the configured maximum
		assert.Equal(t, NewOptionsQuery("MSFT", OptionTypePut, 6), config.DefaultQuery())
	})

	t.Run("empty config", func(t *testing.T) {
		config, err := LoadViewerConfigYAML(writeConfig(t, "{}\n"))
		require.NoError(t, err)

		assert.Equal(t, ProviderYahoo, config.GetProvider())
		assert.True(t, config.GetExtendedColumns())
		assert.Equal(t, DefaultDisplayTimezone, config.GetTimezone())
		assert.Equal(t, NewOptionsQuery("AAPL", OptionTypeCall, 4), config.DefaultQuery())
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := LoadViewerConfigYAML(writeConfig(t, "provider: bloomberg\n"))
		assert.Error(t, err)
	})

	t.Run("bad default option type", func(t *testing.T) {
		_, err := LoadViewerConfigYAML(writeConfig(t, "defaults:\n  option_type: straddle\n"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadViewerConfigYAML(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
