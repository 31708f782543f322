package eventservices

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
	"github.com/kerrybackapps/options-market-data/src/utils"
)

// LoadViewerConfig reads the yaml file named by $OPTIONS_VIEWER_CONFIG, if any,
// and applies the provider overrides from the environment.
func LoadViewerConfig() (*eventmodels.ViewerConfigYAML, error) {
	config := eventmodels.NewViewerConfigYAML()

	if path := utils.GetEnvOrDefault("OPTIONS_VIEWER_CONFIG", ""); path != "" {
		var err error
		if config, err = eventmodels.LoadViewerConfigYAML(path); err != nil {
			return nil, fmt.Errorf("LoadViewerConfig: %w", err)
		}

		log.Infof("loaded viewer config from %s", path)
	}

	if provider := utils.GetEnvOrDefault("MARKET_DATA_PROVIDER", ""); provider != "" {
		config.Provider = eventmodels.ProviderName(provider)
	}

	if source := utils.GetEnvOrDefault("PRICE_HISTORY_SOURCE", ""); source != "" {
		config.PriceHistorySource = eventmodels.PriceHistorySource(source)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("LoadViewerConfig: %w", err)
	}

	return config, nil
}

func ProviderCredentialsFromEnv() ProviderCredentials {
	return ProviderCredentials{
		YahooBaseURL:       utils.GetEnvOrDefault("YAHOO_FINANCE_BASE_URL", YahooFinanceBaseURL),
		YahooCookieURL:     utils.GetEnvOrDefault("YAHOO_FINANCE_COOKIE_URL", YahooFinanceCookieURL),
		TradierBaseURL:     utils.GetEnvOrDefault("TRADIER_BASE_URL", TradierBaseURL),
		TradierBearerToken: utils.GetEnvOrDefault("TRADIER_BEARER_TOKEN", ""),
		PolygonApiKey:      utils.GetEnvOrDefault("POLYGON_API_KEY", ""),
	}
}
