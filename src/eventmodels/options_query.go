package eventmodels

import (
	"fmt"
	"net/http"

	"github.com/gorilla/schema"
)

const (
	DefaultTicker           = "AAPL"
	DefaultOptionType       = OptionTypeCall
	DefaultMaturityIndex    = 4
	DefaultMaxMaturityIndex = 10
)

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	return d
}

// OptionsQuery is the input of one options table request. Field names match the form inputs.
type OptionsQuery struct {
	Ticker        StockSymbol `schema:"ticker" json:"ticker"`
	OptionType    OptionType  `schema:"kind" json:"optionType"`
	MaturityIndex int         `schema:"maturity" json:"maturityIndex"`
}

func NewOptionsQuery(ticker string, optionType OptionType, maturityIndex int) OptionsQuery {
	return OptionsQuery{
		Ticker:        NewStockSymbol(ticker),
		OptionType:    optionType,
		MaturityIndex: maturityIndex,
	}
}

// ParseHTTPRequest overlays the submitted form values on the receiver, so fields
// that were not submitted keep their defaults.
func (q *OptionsQuery) ParseHTTPRequest(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("OptionsQuery: ParseHTTPRequest: parse form: %w", err)
	}

	if err := formDecoder.Decode(q, r.Form); err != nil {
		return fmt.Errorf("OptionsQuery: ParseHTTPRequest: decode: %w", err)
	}

	q.Ticker = NewStockSymbol(string(q.Ticker))
	q.OptionType = OptionType(normalizeOptionType(string(q.OptionType)))

	return nil
}

func (q *OptionsQuery) Validate(r *http.Request) error {
	if q.Ticker == "" {
		return fmt.Errorf("OptionsQuery: Validate: ticker is required")
	}

	if err := q.OptionType.Validate(); err != nil {
		return fmt.Errorf("OptionsQuery: Validate: %w", err)
	}

	return nil
}

// Clamp bounds the maturity index to [0, max] the way the form input does.
func (q OptionsQuery) Clamp(max int) OptionsQuery {
	if q.MaturityIndex < 0 {
		q.MaturityIndex = 0
	}

	if q.MaturityIndex > max {
		q.MaturityIndex = max
	}

	return q
}

func normalizeOptionType(s string) string {
	o, err := ParseOptionType(s)
	if err != nil {
		return s
	}

	return string(o)
}
