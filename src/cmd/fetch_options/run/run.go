package run

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
	"github.com/kerrybackapps/options-market-data/src/eventservices"
)

type RunArgs struct {
	Query   eventmodels.OptionsQuery
	Options eventservices.FetchOptionsTableOptions
	CSV     bool
}

// Run fetches one options table and writes it to w, either as a terminal table or as csv.
func Run(ctx context.Context, provider eventmodels.MarketDataProvider, args RunArgs, w io.Writer) error {
	result, err := eventservices.FetchOptionsTable(ctx, provider, args.Query, args.Options)
	if err != nil {
		return err
	}

	if args.CSV {
		return result.Table.WriteCSV(w)
	}

	if _, err := io.WriteString(w, Render(result)); err != nil {
		return fmt.Errorf("Run: write: %w", err)
	}

	return nil
}

func Render(result *eventmodels.OptionsResult) string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	fmt.Fprintf(display, "%s\n\n", result.Title())

	for _, metric := range result.Snapshot.Metrics() {
		fmt.Fprintf(display, "%s: %s\n", metric.Label, metric.Value)
	}

	display.WriteString("\n")

	table := tablewriter.NewWriter(display)
	table.SetHeader(result.Table.Header())
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, record := range result.Table.Records() {
		table.Append(record)
	}

	table.Render()

	display.WriteString(p.Sprintf("%d strikes\n", len(result.Table.Rows)))

	return display.String()
}
