package eventmodels

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type OptionsResult struct {
	Query    OptionsQuery  `json:"query"`
	Snapshot QuoteSnapshot `json:"snapshot"`
	Table    OptionsTable  `json:"table"`
}

// Title is the heading shown above the table, e.g. "AAPL Call Options".
func (r *OptionsResult) Title() string {
	return fmt.Sprintf("%s %s Options", r.Snapshot.Symbol, cases.Title(language.English).String(string(r.Query.OptionType)))
}
