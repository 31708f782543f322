package eventservices

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
	"github.com/kerrybackapps/options-market-data/src/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	YahooFinanceBaseURL   = "https://query2.finance.yahoo.com"
	YahooFinanceCookieURL = "https://fc.yahoo.com"
	yahooUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	yahooHistoryRange     = "1mo"
	maturityDateFormat    = "2006-01-02"
)

type yahooErrorDTO struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yahooChartResponseDTO struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []decimal.NullDecimal `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooErrorDTO `json:"error"`
	} `json:"chart"`
}

type yahooOptionContractDTO struct {
	ContractSymbol    string          `json:"contractSymbol"`
	Strike            decimal.Decimal `json:"strike"`
	LastPrice         decimal.Decimal `json:"lastPrice"`
	Change            decimal.Decimal `json:"change"`
	PercentChange     decimal.Decimal `json:"percentChange"`
	Volume            int64           `json:"volume"`
	OpenInterest      int64           `json:"openInterest"`
	Bid               decimal.Decimal `json:"bid"`
	Ask               decimal.Decimal `json:"ask"`
	LastTradeDate     int64           `json:"lastTradeDate"`
	ImpliedVolatility decimal.Decimal `json:"impliedVolatility"`
}

func (d yahooOptionContractDTO) ToModel() eventmodels.OptionChainRow {
	row := eventmodels.OptionChainRow{
		ContractSymbol:    d.ContractSymbol,
		Strike:            d.Strike,
		Bid:               d.Bid,
		Ask:               d.Ask,
		LastPrice:         d.LastPrice,
		Change:            d.Change,
		PercentChange:     d.PercentChange,
		ImpliedVolatility: d.ImpliedVolatility,
		Volume:            d.Volume,
		OpenInterest:      d.OpenInterest,
	}

	if d.LastTradeDate > 0 {
		row.LastTradeTime = time.Unix(d.LastTradeDate, 0).UTC()
	}

	return row
}

type yahooOptionChainResponseDTO struct {
	OptionChain struct {
		Result []struct {
			UnderlyingSymbol string  `json:"underlyingSymbol"`
			ExpirationDates  []int64 `json:"expirationDates"`
			Options          []struct {
				ExpirationDate int64                    `json:"expirationDate"`
				Calls          []yahooOptionContractDTO `json:"calls"`
				Puts           []yahooOptionContractDTO `json:"puts"`
			} `json:"options"`
		} `json:"result"`
		Error *yahooErrorDTO `json:"error"`
	} `json:"optionChain"`
}

// YahooFinanceClient reads prices and option chains from Yahoo Finance. The
// options endpoint needs a session cookie and crumb, which are fetched on first
// use and dropped when Yahoo rejects them.
type YahooFinanceClient struct {
	BaseURL   string
	CookieURL string
	client    *http.Client
	mu        sync.Mutex
	crumb     string
}

func NewYahooFinanceClient(baseURL string, cookieURL string, timeout time.Duration) (*YahooFinanceClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("NewYahooFinanceClient: failed to create cookie jar: %w", err)
	}

	return &YahooFinanceClient{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		CookieURL: cookieURL,
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

func (c *YahooFinanceClient) headers() map[string]string {
	return map[string]string{
		"User-Agent": yahooUserAgent,
		"Accept":     "application/json",
	}
}

func (c *YahooFinanceClient) getCrumb(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.crumb != "" {
		return c.crumb, nil
	}

	// the cookie endpoint answers 404 but still sets the session cookie
	if _, err := utils.Get(ctx, c.client, c.CookieURL, c.headers()); err != nil {
		var statusErr *utils.HTTPStatusError
		if !errors.As(err, &statusErr) {
			return "", fmt.Errorf("getCrumb: failed to fetch session cookie: %w", err)
		}
	}

	body, err := utils.Get(ctx, c.client, fmt.Sprintf("%s/v1/test/getcrumb", c.BaseURL), c.headers())
	if err != nil {
		return "", fmt.Errorf("getCrumb: %w", err)
	}

	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.ContainsAny(crumb, "<{") {
		return "", fmt.Errorf("getCrumb: invalid crumb received")
	}

	c.crumb = crumb
	return crumb, nil
}

func (c *YahooFinanceClient) resetCrumb() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.crumb = ""
}

func (c *YahooFinanceClient) FetchPriceHistory(ctx context.Context, symbol eventmodels.StockSymbol) (eventmodels.PriceBars, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d", c.BaseURL, url.PathEscape(symbol.String()), yahooHistoryRange)

	body, err := utils.Get(ctx, c.client, u, c.headers())

	var dto yahooChartResponseDTO
	if decodeErr := decodeYahooResponse(body, err, &dto); decodeErr != nil {
		return nil, fmt.Errorf("FetchPriceHistory: %s: %w", symbol, decodeErr)
	}

	if dto.Chart.Error != nil {
		return nil, fmt.Errorf("FetchPriceHistory: %s: %s", symbol, dto.Chart.Error.Description)
	}

	if len(dto.Chart.Result) == 0 || len(dto.Chart.Result[0].Indicators.Quote) == 0 {
		return eventmodels.PriceBars{}, nil
	}

	result := dto.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	bars := make(eventmodels.PriceBars, 0, len(closes))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || !closes[i].Valid {
			continue
		}

		bars = append(bars, eventmodels.PriceBar{
			Timestamp: time.Unix(ts, 0).UTC(),
			Close:     closes[i].Decimal,
		})
	}

	return bars, nil
}

func (c *YahooFinanceClient) fetchOptions(ctx context.Context, symbol eventmodels.StockSymbol, expiration int64) (*yahooOptionChainResponseDTO, error) {
	crumb, err := c.getCrumb(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("crumb", crumb)
	if expiration > 0 {
		params.Set("date", fmt.Sprintf("%d", expiration))
	}

	u := fmt.Sprintf("%s/v7/finance/options/%s?%s", c.BaseURL, url.PathEscape(symbol.String()), params.Encode())

	body, err := utils.Get(ctx, c.client, u, c.headers())

	var statusErr *utils.HTTPStatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
		log.Debugf("yahoo rejected crumb for %s, dropping session", symbol)
		c.resetCrumb()
	}

	var dto yahooOptionChainResponseDTO
	if decodeErr := decodeYahooResponse(body, err, &dto); decodeErr != nil {
		return nil, decodeErr
	}

	if dto.OptionChain.Error != nil {
		return nil, errors.New(dto.OptionChain.Error.Description)
	}

	if len(dto.OptionChain.Result) == 0 {
		return nil, fmt.Errorf("no options data found for %s", symbol)
	}

	return &dto, nil
}

func (c *YahooFinanceClient) FetchMaturityDates(ctx context.Context, symbol eventmodels.StockSymbol) ([]string, error) {
	dto, err := c.fetchOptions(ctx, symbol, 0)
	if err != nil {
		return nil, fmt.Errorf("FetchMaturityDates: %s: %w", symbol, err)
	}

	expirations := dto.OptionChain.Result[0].ExpirationDates
	dates := make([]string, 0, len(expirations))
	for _, exp := range expirations {
		dates = append(dates, time.Unix(exp, 0).UTC().Format(maturityDateFormat))
	}

	return dates, nil
}

func (c *YahooFinanceClient) FetchOptionChain(ctx context.Context, symbol eventmodels.StockSymbol, maturityDate string) (*eventmodels.OptionChain, error) {
	expiration, err := time.ParseInLocation(maturityDateFormat, maturityDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("FetchOptionChain: invalid maturity date %q: %w", maturityDate, err)
	}

	dto, err := c.fetchOptions(ctx, symbol, expiration.Unix())
	if err != nil {
		return nil, fmt.Errorf("FetchOptionChain: %s %s: %w", symbol, maturityDate, err)
	}

	options := dto.OptionChain.Result[0].Options
	if len(options) == 0 {
		return nil, fmt.Errorf("FetchOptionChain: no option chain for %s expiring %s", symbol, maturityDate)
	}

	chain := &eventmodels.OptionChain{
		Symbol:       symbol,
		MaturityDate: maturityDate,
		Calls:        make([]eventmodels.OptionChainRow, 0, len(options[0].Calls)),
		Puts:         make([]eventmodels.OptionChainRow, 0, len(options[0].Puts)),
	}

	for _, call := range options[0].Calls {
		chain.Calls = append(chain.Calls, call.ToModel())
	}

	for _, put := range options[0].Puts {
		chain.Puts = append(chain.Puts, put.ToModel())
	}

	return chain, nil
}

// decodeYahooResponse decodes body into dto. Yahoo reports failures in the
// JSON envelope even on 4xx responses, so the body is decoded before the
// transport error is surfaced.
func decodeYahooResponse(body []byte, getErr error, dto interface{}) error {
	var statusErr *utils.HTTPStatusError
	if getErr != nil && !errors.As(getErr, &statusErr) {
		return getErr
	}

	if err := json.Unmarshal(body, dto); err != nil {
		if getErr != nil {
			return getErr
		}

		return fmt.Errorf("failed to decode json: %w", err)
	}

	if getErr != nil && !hasYahooError(dto) {
		return getErr
	}

	return nil
}

func hasYahooError(dto interface{}) bool {
	switch v := dto.(type) {
	case *yahooChartResponseDTO:
		return v.Chart.Error != nil
	case *yahooOptionChainResponseDTO:
		return v.OptionChain.Error != nil
	default:
		return false
	}
}
