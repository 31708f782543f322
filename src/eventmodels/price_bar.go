package eventmodels

import (
	"time"

	"github.com/shopspring/decimal"
)

type PriceBar struct {
	Timestamp time.Time
	Close     decimal.Decimal
}

type PriceBars []PriceBar

// Last returns the most recent bar. Bars are ordered oldest first.
func (b PriceBars) Last() (PriceBar, bool) {
	if len(b) == 0 {
		return PriceBar{}, false
	}

	return b[len(b)-1], true
}
