package eventmodels

import (
	"time"

	"github.com/shopspring/decimal"
)

type OptionChainTickGreeksDTO struct {
	Delta float64         `json:"delta"`
	Gamma float64         `json:"gamma"`
	Theta float64         `json:"theta"`
	Vega  float64         `json:"vega"`
	MidIV decimal.Decimal `json:"mid_iv"`
	BidIV decimal.Decimal `json:"bid_iv"`
	AskIV decimal.Decimal `json:"ask_iv"`
}

// OptionChainTickDTO is one contract of a Tradier option chain.
type OptionChainTickDTO struct {
	Symbol           string                    `json:"symbol"`
	Description      string                    `json:"description"`
	ChangePercentage decimal.Decimal           `json:"change_percentage"`
	Bid              decimal.Decimal           `json:"bid"`
	Ask              decimal.Decimal           `json:"ask"`
	Last             decimal.Decimal           `json:"last"`
	Change           decimal.Decimal           `json:"change"`
	Volume           int64                     `json:"volume"`
	OpenInterest     int64                     `json:"open_interest"`
	Strike           decimal.Decimal           `json:"strike"`
	TradeDate        int64                     `json:"trade_date"`
	OptionType       string                    `json:"option_type"`
	ExpirationDate   string                    `json:"expiration_date"`
	Greeks           *OptionChainTickGreeksDTO `json:"greeks"`
}

func (d *OptionChainTickDTO) ToModel() OptionChainRow {
	row := OptionChainRow{
		ContractSymbol: d.Symbol,
		Strike:         d.Strike,
		Bid:            d.Bid,
		Ask:            d.Ask,
		LastPrice:      d.Last,
		Change:         d.Change,
		PercentChange:  d.ChangePercentage,
		Volume:         d.Volume,
		OpenInterest:   d.OpenInterest,
	}

	if d.TradeDate > 0 {
		row.LastTradeTime = time.UnixMilli(d.TradeDate).UTC()
	}

	if d.Greeks != nil {
		row.ImpliedVolatility = d.Greeks.MidIV
	}

	return row
}
