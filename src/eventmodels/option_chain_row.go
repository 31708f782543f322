package eventmodels

import (
	"time"

	"github.com/shopspring/decimal"
)

// OptionChainRow is a single contract quote as returned by a MarketDataProvider.
// PercentChange is expressed in percent units (12.34 means 12.34%) and
// ImpliedVolatility as a fraction (0.256 means 25.6%).
type OptionChainRow struct {
	ContractSymbol    string
	Strike            decimal.Decimal
	Bid               decimal.Decimal
	Ask               decimal.Decimal
	LastPrice         decimal.Decimal
	Change            decimal.Decimal
	PercentChange     decimal.Decimal
	ImpliedVolatility decimal.Decimal
	LastTradeTime     time.Time
	Volume            int64
	OpenInterest      int64
}
