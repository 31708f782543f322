package eventservices

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
	"github.com/kerrybackapps/options-market-data/src/utils"
)

const TradierBaseURL = "https://api.tradier.com/v1"

type tradierHistoryDayDTO struct {
	Date  string          `json:"date"`
	Close decimal.Decimal `json:"close"`
}

type TradierClient struct {
	BaseURL     string
	BearerToken string
	client      *http.Client
	now         func() time.Time
}

func NewTradierClient(baseURL string, bearerToken string, timeout time.Duration) *TradierClient {
	return &TradierClient{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		BearerToken: bearerToken,
		client: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

func (c *TradierClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := fmt.Sprintf("%s%s?%s", c.BaseURL, path, params.Encode())

	return utils.Get(ctx, c.client, u, map[string]string{
		"Accept":        "application/json",
		"Authorization": fmt.Sprintf("Bearer %s", c.BearerToken),
	})
}

func (c *TradierClient) FetchPriceHistory(ctx context.Context, symbol eventmodels.StockSymbol) (eventmodels.PriceBars, error) {
	params := url.Values{}
	params.Add("symbol", symbol.String())
	params.Add("interval", "daily")
	params.Add("start", c.now().AddDate(0, -1, 0).Format(maturityDateFormat))

	body, err := c.get(ctx, "/markets/history", params)
	if err != nil {
		return nil, fmt.Errorf("FetchPriceHistory: failed to fetch history for %s: %w", symbol, err)
	}

	days, err := utils.ParseTradierResponse[tradierHistoryDayDTO](body)
	if err != nil {
		return nil, fmt.Errorf("FetchPriceHistory: failed to parse response: %w", err)
	}

	bars := make(eventmodels.PriceBars, 0, len(days))
	for _, day := range days {
		ts, err := time.Parse(maturityDateFormat, day.Date)
		if err != nil {
			return nil, fmt.Errorf("FetchPriceHistory: failed to parse date %q: %w", day.Date, err)
		}

		bars = append(bars, eventmodels.PriceBar{
			Timestamp: ts,
			Close:     day.Close,
		})
	}

	return bars, nil
}

func (c *TradierClient) FetchMaturityDates(ctx context.Context, symbol eventmodels.StockSymbol) ([]string, error) {
	params := url.Values{}
	params.Add("symbol", symbol.String())

	body, err := c.get(ctx, "/markets/options/expirations", params)
	if err != nil {
		return nil, fmt.Errorf("FetchMaturityDates: failed to fetch expirations for %s: %w", symbol, err)
	}

	dates, err := utils.ParseTradierResponse[string](body)
	if err != nil {
		return nil, fmt.Errorf("FetchMaturityDates: failed to parse response: %w", err)
	}

	return dates, nil
}

func (c *TradierClient) FetchOptionChain(ctx context.Context, symbol eventmodels.StockSymbol, maturityDate string) (*eventmodels.OptionChain, error) {
	params := url.Values{}
	params.Add("symbol", symbol.String())
	params.Add("expiration", maturityDate)
	params.Add("greeks", "true")

	body, err := c.get(ctx, "/markets/options/chains", params)
	if err != nil {
		return nil, fmt.Errorf("FetchOptionChain: failed to fetch option chain for %s: %w", symbol, err)
	}

	ticks, err := utils.ParseTradierResponse[eventmodels.OptionChainTickDTO](body)
	if err != nil {
		return nil, fmt.Errorf("FetchOptionChain: failed to parse response: %w", err)
	}

	if len(ticks) == 0 {
		return nil, fmt.Errorf("FetchOptionChain: no option chain for %s expiring %s", symbol, maturityDate)
	}

	chain := &eventmodels.OptionChain{
		Symbol:       symbol,
		MaturityDate: maturityDate,
	}

	for _, tick := range ticks {
		switch eventmodels.OptionType(tick.OptionType) {
		case eventmodels.OptionTypeCall:
			chain.Calls = append(chain.Calls, tick.ToModel())
		case eventmodels.OptionTypePut:
			chain.Puts = append(chain.Puts, tick.ToModel())
		}
	}

	return chain, nil
}
