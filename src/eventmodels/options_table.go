package eventmodels

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const StrikeLabel = "Strike"

const (
	ColumnBid               = "Bid"
	ColumnAsk               = "Ask"
	ColumnLastPrice         = "Last Price"
	ColumnChange            = "Change"
	ColumnPercentChange     = "% Change"
	ColumnLastTradeTime     = "Time of Last Trade"
	ColumnVolume            = "Volume"
	ColumnOpenInterest      = "Open Interest"
	ColumnImpliedVolatility = "Implied Volatility"
)

var BasicColumns = []string{
	ColumnBid,
	ColumnAsk,
	ColumnLastPrice,
	ColumnLastTradeTime,
	ColumnVolume,
	ColumnOpenInterest,
}

var ExtendedColumns = []string{
	ColumnBid,
	ColumnAsk,
	ColumnLastPrice,
	ColumnChange,
	ColumnPercentChange,
	ColumnLastTradeTime,
	ColumnVolume,
	ColumnOpenInterest,
	ColumnImpliedVolatility,
}

var hundred = decimal.NewFromInt(100)

type OptionsTableRow struct {
	Strike decimal.Decimal `json:"strike"`
	Cells  []string        `json:"cells"`
}

// OptionsTable is the display form of an option chain, indexed by strike.
// Rows keep the order the provider returned them in.
type OptionsTable struct {
	IndexLabel string            `json:"indexLabel"`
	Columns    []string          `json:"columns"`
	Extended   bool              `json:"extended"`
	Rows       []OptionsTableRow `json:"rows"`
}

func NewOptionsTable(rows []OptionChainRow, extended bool, loc *time.Location) OptionsTable {
	columns := BasicColumns
	if extended {
		columns = ExtendedColumns
	}

	table := OptionsTable{
		IndexLabel: StrikeLabel,
		Columns:    append([]string(nil), columns...),
		Extended:   extended,
		Rows:       make([]OptionsTableRow, 0, len(rows)),
	}

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, column := range columns {
			cells[i] = formatCell(row, column, loc)
		}

		table.Rows = append(table.Rows, OptionsTableRow{
			Strike: row.Strike,
			Cells:  cells,
		})
	}

	return table
}

func formatCell(row OptionChainRow, column string, loc *time.Location) string {
	switch column {
	case ColumnBid:
		return row.Bid.String()
	case ColumnAsk:
		return row.Ask.String()
	case ColumnLastPrice:
		return row.LastPrice.String()
	case ColumnChange:
		return row.Change.StringFixed(2)
	case ColumnPercentChange:
		return FormatPercent(row.PercentChange.Div(hundred))
	case ColumnLastTradeTime:
		if row.LastTradeTime.IsZero() {
			return ""
		}
		return FormatDisplayTime(row.LastTradeTime, loc)
	case ColumnVolume:
		return strconv.FormatInt(row.Volume, 10)
	case ColumnOpenInterest:
		return strconv.FormatInt(row.OpenInterest, 10)
	case ColumnImpliedVolatility:
		return FormatPercent(row.ImpliedVolatility)
	default:
		return ""
	}
}

// FormatPercent renders a fraction as a percentage with one decimal place: 0.256 -> "25.6%".
func FormatPercent(fraction decimal.Decimal) string {
	return fmt.Sprintf("%s%%", fraction.Mul(hundred).StringFixed(1))
}

func (t OptionsTable) Header() []string {
	return append([]string{t.IndexLabel}, t.Columns...)
}

// Records flattens the table, strike first, for tabular writers.
func (t OptionsTable) Records() [][]string {
	records := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, append([]string{row.Strike.String()}, row.Cells...))
	}

	return records
}

func (t OptionsTable) Strikes() []decimal.Decimal {
	strikes := make([]decimal.Decimal, len(t.Rows))
	for i, row := range t.Rows {
		strikes[i] = row.Strike
	}

	return strikes
}

func (t OptionsTable) Value(rowIndex int, column string) (string, bool) {
	if rowIndex < 0 || rowIndex >= len(t.Rows) {
		return "", false
	}

	for i, c := range t.Columns {
		if c == column {
			return t.Rows[rowIndex].Cells[i], true
		}
	}

	return "", false
}
