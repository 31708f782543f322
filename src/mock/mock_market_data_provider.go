package mock

import (
	"context"
	"fmt"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
)

// MockMarketDataProvider serves canned data and records the calls made to it.
type MockMarketDataProvider struct {
	History    eventmodels.PriceBars
	Maturities []string
	Chains     map[string]*eventmodels.OptionChain

	HistoryErr  error
	MaturityErr error
	ChainErr    error

	Calls []string
}

func (m *MockMarketDataProvider) FetchPriceHistory(ctx context.Context, symbol eventmodels.StockSymbol) (eventmodels.PriceBars, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("history %s", symbol))
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}

	return m.History, nil
}

func (m *MockMarketDataProvider) FetchMaturityDates(ctx context.Context, symbol eventmodels.StockSymbol) ([]string, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("maturities %s", symbol))
	if m.MaturityErr != nil {
		return nil, m.MaturityErr
	}

	return m.Maturities, nil
}

func (m *MockMarketDataProvider) FetchOptionChain(ctx context.Context, symbol eventmodels.StockSymbol, maturityDate string) (*eventmodels.OptionChain, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("chain %s %s", symbol, maturityDate))
	if m.ChainErr != nil {
		return nil, m.ChainErr
	}

	chain, found := m.Chains[maturityDate]
	if !found {
		return nil, fmt.Errorf("no option chain for %s expiring %s", symbol, maturityDate)
	}

	return chain, nil
}
