package run

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
	"github.com/kerrybackapps/options-market-data/src/eventservices"
	"github.com/kerrybackapps/options-market-data/src/mock"
)

func newTestArgs(t *testing.T, query eventmodels.OptionsQuery, extended bool, csv bool) RunArgs {
	t.Helper()

	loc, err := eventmodels.LoadDisplayLocation("America/New_York")
	require.NoError(t, err)

	return RunArgs{
		Query: query,
		Options: eventservices.FetchOptionsTableOptions{
			Extended: extended,
			Location: loc,
			Now: func() time.Time {
				return time.Date(2024, 7, 3, 14, 0, 0, 0, time.UTC)
			},
		},
		CSV: csv,
	}
}

func newTestProvider() *mock.MockMarketDataProvider {
	return &mock.MockMarketDataProvider{
		History:    eventmodels.PriceBars{{Timestamp: time.Date(2024, 7, 2, 20, 0, 0, 0, time.UTC), Close: decimal.RequireFromString("220.27")}},
		Maturities: []string{"2024-07-05", "2024-07-12"},
		Chains: map[string]*eventmodels.OptionChain{
			"2024-07-12": {
				Symbol:       "SPY",
				MaturityDate: "2024-07-12",
				Puts: []eventmodels.OptionChainRow{
					{
						Strike:            decimal.NewFromInt(540),
						Bid:               decimal.RequireFromString("2.5"),
						Ask:               decimal.RequireFromString("2.55"),
						LastPrice:         decimal.RequireFromString("2.52"),
						ImpliedVolatility: decimal.RequireFromString("0.1234"),
						LastTradeTime:     time.Date(2024, 7, 2, 19, 59, 0, 0, time.UTC),
						Volume:            2500,
						OpenInterest:      10000,
					},
				},
			},
		},
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("terminal table", func(t *testing.T) {
		var buf bytes.Buffer
		args := newTestArgs(t, eventmodels.NewOptionsQuery("spy", eventmodels.OptionTypePut, 1), true, false)

		require.NoError(t, Run(ctx, newTestProvider(), args, &buf))

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "SPY Put Options\n"))
		assert.Contains(t, out, "Maturity Date: 2024-07-12\n")
		assert.Contains(t, out, "Last SPY Price: $220.27\n")
		assert.Contains(t, out, "Data Updated: 2024-07-03 10:00:00\n")
		assert.Contains(t, out, "Implied Volatility")
		assert.Contains(t, out, "12.3%")
		assert.Contains(t, out, "2024-07-02 15:59:00")
		assert.Contains(t, out, "10000")
		assert.Contains(t, out, "1 strikes\n")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		args := newTestArgs(t, eventmodels.NewOptionsQuery("SPY", eventmodels.OptionTypePut, 1), false, true)

		require.NoError(t, Run(ctx, newTestProvider(), args, &buf))

		assert.Equal(t, "Strike,Bid,Ask,Last Price,Time of Last Trade,Volume,Open Interest\n540,2.5,2.55,2.52,2024-07-02 15:59:00,2500,10000\n", buf.String())
	})

	t.Run("invalid maturity index", func(t *testing.T) {
		var buf bytes.Buffer
		args := newTestArgs(t, eventmodels.NewOptionsQuery("SPY", eventmodels.OptionTypeCall, 2), false, false)

		err := Run(ctx, newTestProvider(), args, &buf)
		require.Error(t, err)

		var fetchErr *eventmodels.FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, eventmodels.InvalidMaturityIndex, fetchErr.Kind)
		assert.Empty(t, buf.String())
	})
}
