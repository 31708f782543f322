package eventmodels

import "context"

// MarketDataProvider fetches the data needed to render an options table.
// Maturity dates are formatted as 2006-01-02 and ordered as the provider returns them.
type MarketDataProvider interface {
	FetchPriceHistory(ctx context.Context, symbol StockSymbol) (PriceBars, error)
	FetchMaturityDates(ctx context.Context, symbol StockSymbol) ([]string, error)
	FetchOptionChain(ctx context.Context, symbol StockSymbol, maturityDate string) (*OptionChain, error)
}

// PriceHistoryFetcher is the subset of MarketDataProvider used for the last close price.
type PriceHistoryFetcher interface {
	FetchPriceHistory(ctx context.Context, symbol StockSymbol) (PriceBars, error)
}
