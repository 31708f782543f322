package eventmodels

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsQuery(t *testing.T) {
	defaults := NewViewerConfigYAML().DefaultQuery()

	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, StockSymbol("AAPL"), defaults.Ticker)
		assert.Equal(t, OptionTypeCall, defaults.OptionType)
		assert.Equal(t, 4, defaults.MaturityIndex)
	})

	t.Run("form values override defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?ticker=%20msft%20&kind=PUT&maturity=7&submit=Get+Options+Data", nil)

		q := defaults
		require.NoError(t, q.ParseHTTPRequest(r))
		require.NoError(t, q.Validate(r))

		assert.Equal(t, StockSymbol("MSFT"), q.Ticker)
		assert.Equal(t, OptionTypePut, q.OptionType)
		assert.Equal(t, 7, q.MaturityIndex)
	})

	t.Run("missing fields keep defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?ticker=tsla", nil)

		q := defaults
		require.NoError(t, q.ParseHTTPRequest(r))

		assert.Equal(t, StockSymbol("TSLA"), q.Ticker)
		assert.Equal(t, OptionTypeCall, q.OptionType)
		assert.Equal(t, 4, q.MaturityIndex)
	})

	t.Run("non numeric maturity", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?maturity=soon", nil)

		q := defaults
		assert.Error(t, q.ParseHTTPRequest(r))
	})

	t.Run("invalid option type", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?kind=straddle", nil)

		q := defaults
		require.NoError(t, q.ParseHTTPRequest(r))
		assert.Error(t, q.Validate(r))
	})

	t.Run("empty ticker", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/?ticker=", nil)

		q := defaults
		require.NoError(t, q.ParseHTTPRequest(r))
		assert.Error(t, q.Validate(r))
	})

	t.Run("clamp", func(t *testing.T) {
		assert.Equal(t, 0, NewOptionsQuery("AAPL", OptionTypeCall, -3).Clamp(10).MaturityIndex)
		assert.Equal(t, 10, NewOptionsQuery("AAPL", OptionTypeCall, 20).Clamp(10).MaturityIndex)
		assert.Equal(t, 5, NewOptionsQuery("AAPL", OptionTypeCall, 5).Clamp(10).MaturityIndex)
	})
}
