package eventmodels

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type QuoteSnapshot struct {
	Symbol         StockSymbol     `json:"symbol"`
	LastClosePrice decimal.Decimal `json:"lastClosePrice"`
	MaturityDate   string          `json:"maturityDate"`
	FetchedAt      string          `json:"fetchedAt"`
}

func (s QuoteSnapshot) FormattedLastPrice() string {
	return fmt.Sprintf("$%s", s.LastClosePrice.StringFixed(2))
}

func (s QuoteSnapshot) LastPriceLabel() string {
	return fmt.Sprintf("Last %s Price", s.Symbol)
}

// Metrics returns the three summary metrics in display order.
func (s QuoteSnapshot) Metrics() []Metric {
	return []Metric{
		{Label: "Maturity Date", Value: s.MaturityDate},
		{Label: s.LastPriceLabel(), Value: s.FormattedLastPrice()},
		{Label: "Data Updated", Value: s.FetchedAt},
	}
}

type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
