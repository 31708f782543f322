package eventservices

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
)

func TestLoadViewerConfig(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		t.Setenv("OPTIONS_VIEWER_CONFIG", "")
		t.Setenv("MARKET_DATA_PROVIDER", "")
		t.Setenv("PRICE_HISTORY_SOURCE", "")

		config, err := LoadViewerConfig()
		require.NoError(t, err)

		assert.Equal(t, eventmodels.ProviderYahoo, config.GetProvider())
		assert.Equal(t, eventmodels.PriceHistorySourceProvider, config.GetPriceHistorySource())
		assert.True(t, config.GetExtendedColumns())
		assert.Equal(t, 10, config.GetMaxMaturityIndex())
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "viewer.yaml")
		require.NoError(t, os.WriteFile(path, []byte("provider: yahoo\nextended_columns: false\n"), 0o644))

		t.Setenv("OPTIONS_VIEWER_CONFIG", path)
		t.Setenv("MARKET_DATA_PROVIDER", "tradier")
		t.Setenv("PRICE_HISTORY_SOURCE", "polygon")

		config, err := LoadViewerConfig()
		require.NoError(t, err)

		assert.Equal(t, eventmodels.ProviderTradier, config.GetProvider())
		assert.Equal(t, eventmodels.PriceHistorySourcePolygon, config.GetPriceHistorySource())
		assert.False(t, config.GetExtendedColumns())
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Setenv("OPTIONS_VIEWER_CONFIG", "")
		t.Setenv("MARKET_DATA_PROVIDER", "bloomberg")
		t.Setenv("PRICE_HISTORY_SOURCE", "")

		_, err := LoadViewerConfig()
		assert.Error(t, err)
	})
}

func TestNewMarketDataProvider(t *testing.T) {
	t.Run("yahoo", func(t *testing.T) {
		provider, err := NewMarketDataProvider(eventmodels.NewViewerConfigYAML(), ProviderCredentials{})
		require.NoError(t, err)
		assert.IsType(t, &YahooFinanceClient{}, provider)
	})

	t.Run("tradier requires a token", func(t *testing.T) {
		config := &eventmodels.ViewerConfigYAML{Provider: eventmodels.ProviderTradier}

		_, err := NewMarketDataProvider(config, ProviderCredentials{})
		assert.Error(t, err)

		provider, err := NewMarketDataProvider(config, ProviderCredentials{TradierBearerToken: "token"})
		require.NoError(t, err)
		assert.IsType(t, &TradierClient{}, provider)
	})

	t.Run("polygon price history", func(t *testing.T) {
		config := &eventmodels.ViewerConfigYAML{PriceHistorySource: eventmodels.PriceHistorySourcePolygon}

		_, err := NewMarketDataProvider(config, ProviderCredentials{})
		assert.Error(t, err)

		provider, err := NewMarketDataProvider(config, ProviderCredentials{PolygonApiKey: "key"})
		require.NoError(t, err)
		assert.IsType(t, &PriceHistoryOverride{}, provider)
	})
}
