package eventservices

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
)

const providerTimeout = 10 * time.Second

type ProviderCredentials struct {
	YahooBaseURL       string
	YahooCookieURL     string
	TradierBaseURL     string
	TradierBearerToken string
	PolygonApiKey      string
}

func NewMarketDataProvider(config *eventmodels.ViewerConfigYAML, creds ProviderCredentials) (eventmodels.MarketDataProvider, error) {
	var provider eventmodels.MarketDataProvider

	switch config.GetProvider() {
	case eventmodels.ProviderYahoo:
		baseURL := creds.YahooBaseURL
		if baseURL == "" {
			baseURL = YahooFinanceBaseURL
		}

		cookieURL := creds.YahooCookieURL
		if cookieURL == "" {
			cookieURL = YahooFinanceCookieURL
		}

		client, err := NewYahooFinanceClient(baseURL, cookieURL, providerTimeout)
		if err != nil {
			return nil, fmt.Errorf("NewMarketDataProvider: %w", err)
		}

		provider = client
	case eventmodels.ProviderTradier:
		if creds.TradierBearerToken == "" {
			return nil, fmt.Errorf("NewMarketDataProvider: tradier provider requires a bearer token")
		}

		baseURL := creds.TradierBaseURL
		if baseURL == "" {
			baseURL = TradierBaseURL
		}

		provider = NewTradierClient(baseURL, creds.TradierBearerToken, providerTimeout)
	default:
		return nil, fmt.Errorf("NewMarketDataProvider: unknown provider: %s", config.GetProvider())
	}

	if config.GetPriceHistorySource() == eventmodels.PriceHistorySourcePolygon {
		if creds.PolygonApiKey == "" {
			return nil, fmt.Errorf("NewMarketDataProvider: polygon price history requires an api key")
		}

		provider = NewPriceHistoryOverride(provider, NewPolygonPriceHistory(creds.PolygonApiKey))
	}

	log.Infof("market data provider: %s, price history: %s", config.GetProvider(), config.GetPriceHistorySource())

	return provider, nil
}
