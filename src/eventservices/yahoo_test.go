package eventservices

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
)

const yahooOptionsBody = `{"optionChain":{"result":[{"underlyingSymbol":"AAPL","expirationDates":[1705622400,1706227200],
"options":[{"expirationDate":1705622400,
"calls":[{"contractSymbol":"AAPL240119C00150000","strike":150.0,"lastPrice":36.1,"change":-0.4,"percentChange":-1.0958,"volume":12,"openInterest":3456,"bid":35.9,"ask":36.3,"lastTradeDate":1705004398,"impliedVolatility":0.5312}],
"puts":[{"contractSymbol":"AAPL240119P00150000","strike":150.0,"lastPrice":0.02,"bid":0.01,"ask":0.03,"lastTradeDate":1705004398,"impliedVolatility":0.61}]}]}],"error":null}}`

func newYahooTestServer(t *testing.T, crumbRequests *int) *httptest.Server {
	t.Helper()

	router := mux.NewRouter()

	router.HandleFunc("/cookie", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "A3", Value: "session", Path: "/"})
		w.WriteHeader(http.StatusNotFound)
	})

	router.HandleFunc("/v1/test/getcrumb", func(w http.ResponseWriter, r *http.Request) {
		*crumbRequests++
		fmt.Fprint(w, "crumb-123")
	})

	router.HandleFunc("/v8/finance/chart/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["symbol"] != "AAPL" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
			return
		}

		assert.Equal(t, "1mo", r.URL.Query().Get("range"))
		fmt.Fprint(w, `{"chart":{"result":[{"timestamp":[1704902400,1704988800,1705075200],"indicators":{"quote":[{"close":[185.59,null,186.12]}]}}],"error":null}}`)
	})

	router.HandleFunc("/v7/finance/options/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("crumb") != "crumb-123" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"finance":{"result":null,"error":{"code":"Unauthorized","description":"Invalid Crumb"}}}`)
			return
		}

		if mux.Vars(r)["symbol"] != "AAPL" {
			fmt.Fprint(w, `{"optionChain":{"result":[],"error":null}}`)
			return
		}

		if date := r.URL.Query().Get("date"); date != "" {
			assert.Equal(t, "1705622400", date)
		}

		fmt.Fprint(w, yahooOptionsBody)
	})

	return httptest.NewServer(router)
}

func newTestYahooClient(t *testing.T, srv *httptest.Server) *YahooFinanceClient {
	t.Helper()

	client, err := NewYahooFinanceClient(srv.URL, srv.URL+"/cookie", 5*time.Second)
	require.NoError(t, err)

	return client
}

func TestYahooFinanceClient(t *testing.T) {
	ctx := context.Background()

	t.Run("price history skips missing closes", func(t *testing.T) {
		crumbRequests := 0
		srv := newYahooTestServer(t, &crumbRequests)
		defer srv.Close()

		bars, err := newTestYahooClient(t, srv).FetchPriceHistory(ctx, "aapl")
		require.NoError(t, err)
		require.Len(t, bars, 2)

		last, found := bars.Last()
		require.True(t, found)
		assert.True(t, last.Close.Equal(decimal.RequireFromString("186.12")))
		assert.Equal(t, time.Unix(1705075200, 0).UTC(), last.Timestamp)
		assert.Equal(t, 0, crumbRequests)
	})

	t.Run("unknown symbol reports provider description", func(t *testing.T) {
		crumbRequests := 0
		srv := newYahooTestServer(t, &crumbRequests)
		defer srv.Close()

		_, err := newTestYahooClient(t, srv).FetchPriceHistory(ctx, "ZZZZINVALID")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No data found, symbol may be delisted")
	})

	t.Run("maturity dates are formatted in UTC", func(t *testing.T) {
		crumbRequests := 0
		srv := newYahooTestServer(t, &crumbRequests)
		defer srv.Close()

		client := newTestYahooClient(t, srv)

		dates, err := client.FetchMaturityDates(ctx, "AAPL")
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-01-19", "2024-01-26"}, dates)

		_, err = client.FetchMaturityDates(ctx, "AAPL")
		require.NoError(t, err)
		assert.Equal(t, 1, crumbRequests)
	})

	t.Run("option chain rows", func(t *testing.T) {
		crumbRequests := 0
		srv := newYahooTestServer(t, &crumbRequests)
		defer srv.Close()

		chain, err := newTestYahooClient(t, srv).FetchOptionChain(ctx, "AAPL", "2024-01-19")
		require.NoError(t, err)

		require.Len(t, chain.Calls, 1)
		require.Len(t, chain.Puts, 1)

		call := chain.Calls[0]
		assert.Equal(t, "AAPL240119C00150000", call.ContractSymbol)
		assert.True(t, call.Strike.Equal(decimal.NewFromInt(150)))
		assert.True(t, call.PercentChange.Equal(decimal.RequireFromString("-1.0958")))
		assert.True(t, call.ImpliedVolatility.Equal(decimal.RequireFromString("0.5312")))
		assert.Equal(t, int64(12), call.Volume)
		assert.Equal(t, int64(3456), call.OpenInterest)
		assert.Equal(t, time.Unix(1705004398, 0).UTC(), call.LastTradeTime)

		put := chain.Puts[0]
		assert.Equal(t, int64(0), put.Volume)
		assert.True(t, put.Change.IsZero())
	})

	t.Run("symbol without options", func(t *testing.T) {
		crumbRequests := 0
		srv := newYahooTestServer(t, &crumbRequests)
		defer srv.Close()

		_, err := newTestYahooClient(t, srv).FetchMaturityDates(ctx, "ZZZZINVALID")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no options data found for ZZZZINVALID")
	})

	t.Run("invalid maturity date", func(t *testing.T) {
		crumbRequests := 0
		srv := newYahooTestServer(t, &crumbRequests)
		defer srv.Close()

		_, err := newTestYahooClient(t, srv).FetchOptionChain(ctx, "AAPL", "01/19/2024")
		assert.Error(t, err)
	})

	t.Run("end to end with FetchOptionsTable", func(t *testing.T) {
		crumbRequests := 0
		srv := newYahooTestServer(t, &crumbRequests)
		defer srv.Close()

		query := eventmodels.NewOptionsQuery("aapl", eventmodels.OptionTypeCall, 0)
		result, err := FetchOptionsTable(ctx, newTestYahooClient(t, srv), query, testOptions(t, true))
		require.NoError(t, err)

		assert.Equal(t, "2024-01-19", result.Snapshot.MaturityDate)
		assert.Equal(t, "$186.12", result.Snapshot.FormattedLastPrice())
		require.Len(t, result.Table.Rows, 1)
		assert.Equal(t, []string{"35.9", "36.3", "36.1", "-0.40", "-1.1%", "2024-01-11 15:19:58", "12", "3456", "53.1%"}, result.Table.Rows[0].Cells)
	})
}
