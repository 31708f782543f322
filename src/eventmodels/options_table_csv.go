package eventmodels

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

type optionsTableCSVRow struct {
	Strike        string `csv:"Strike"`
	Bid           string `csv:"Bid"`
	Ask           string `csv:"Ask"`
	LastPrice     string `csv:"Last Price"`
	LastTradeTime string `csv:"Time of Last Trade"`
	Volume        string `csv:"Volume"`
	OpenInterest  string `csv:"Open Interest"`
}

type extendedOptionsTableCSVRow struct {
	Strike            string `csv:"Strike"`
	Bid               string `csv:"Bid"`
	Ask               string `csv:"Ask"`
	LastPrice         string `csv:"Last Price"`
	Change            string `csv:"Change"`
	PercentChange     string `csv:"% Change"`
	LastTradeTime     string `csv:"Time of Last Trade"`
	Volume            string `csv:"Volume"`
	OpenInterest      string `csv:"Open Interest"`
	ImpliedVolatility string `csv:"Implied Volatility"`
}

func (t OptionsTable) cell(i int, column string) string {
	v, _ := t.Value(i, column)
	return v
}

// WriteCSV writes the table with the same header labels used on screen.
func (t OptionsTable) WriteCSV(w io.Writer) error {
	if t.Extended {
		rows := make([]*extendedOptionsTableCSVRow, 0, len(t.Rows))
		for i, row := range t.Rows {
			rows = append(rows, &extendedOptionsTableCSVRow{
				Strike:            row.Strike.String(),
				Bid:               t.cell(i, ColumnBid),
				Ask:               t.cell(i, ColumnAsk),
				LastPrice:         t.cell(i, ColumnLastPrice),
				Change:            t.cell(i, ColumnChange),
				PercentChange:     t.cell(i, ColumnPercentChange),
				LastTradeTime:     t.cell(i, ColumnLastTradeTime),
				Volume:            t.cell(i, ColumnVolume),
				OpenInterest:      t.cell(i, ColumnOpenInterest),
				ImpliedVolatility: t.cell(i, ColumnImpliedVolatility),
			})
		}

		if err := gocsv.Marshal(&rows, w); err != nil {
			return fmt.Errorf("OptionsTable: WriteCSV: %w", err)
		}

		return nil
	}

	rows := make([]*optionsTableCSVRow, 0, len(t.Rows))
	for i, row := range t.Rows {
		rows = append(rows, &optionsTableCSVRow{
			Strike:        row.Strike.String(),
			Bid:           t.cell(i, ColumnBid),
			Ask:           t.cell(i, ColumnAsk),
			LastPrice:     t.cell(i, ColumnLastPrice),
			LastTradeTime: t.cell(i, ColumnLastTradeTime),
			Volume:        t.cell(i, ColumnVolume),
			OpenInterest:  t.cell(i, ColumnOpenInterest),
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("OptionsTable: WriteCSV: %w", err)
	}

	return nil
}
