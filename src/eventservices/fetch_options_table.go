package eventservices

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
)

type FetchOptionsTableOptions struct {
	Extended bool
	Location *time.Location
	Now      func() time.Time
}

// FetchOptionsTable fetches the last close, the maturity list and the option
// chain for query and formats the selected side of the chain for display.
// Every error returned is a *eventmodels.FetchError.
func FetchOptionsTable(ctx context.Context, provider eventmodels.MarketDataProvider, query eventmodels.OptionsQuery, opts FetchOptionsTableOptions) (*eventmodels.OptionsResult, error) {
	tracer := otel.GetTracerProvider().Tracer("eventservices:options")
	ctx, span := tracer.Start(ctx, "FetchOptionsTable")
	defer span.End()

	query.Ticker = eventmodels.NewStockSymbol(string(query.Ticker))

	span.SetAttributes(
		attribute.String("symbol", query.Ticker.String()),
		attribute.String("optionType", string(query.OptionType)),
		attribute.Int("maturityIndex", query.MaturityIndex),
	)

	logger := log.WithContext(ctx).WithFields(log.Fields{
		"requestID":     uuid.New(),
		"symbol":        query.Ticker,
		"optionType":    query.OptionType,
		"maturityIndex": query.MaturityIndex,
	})

	start := time.Now()

	result, err := fetchOptionsTable(ctx, provider, query, opts)
	if err != nil {
		fetchErr := eventmodels.AsFetchError(err)
		span.RecordError(fetchErr)
		span.SetStatus(codes.Error, string(fetchErr.Kind))
		logger.WithField("kind", fetchErr.Kind).Warnf("FetchOptionsTable: %v", fetchErr)
		return nil, fetchErr
	}

	logger.WithFields(log.Fields{
		"maturityDate": result.Snapshot.MaturityDate,
		"rows":         len(result.Table.Rows),
		"elapsed":      time.Since(start),
	}).Info("FetchOptionsTable: done")

	return result, nil
}

func fetchOptionsTable(ctx context.Context, provider eventmodels.MarketDataProvider, query eventmodels.OptionsQuery, opts FetchOptionsTableOptions) (*eventmodels.OptionsResult, error) {
	if err := query.OptionType.Validate(); err != nil {
		return nil, eventmodels.NewProviderError(err)
	}

	loc := opts.Location
	if loc == nil {
		var err error
		if loc, err = eventmodels.LoadDisplayLocation(eventmodels.DefaultDisplayTimezone); err != nil {
			return nil, eventmodels.NewProviderError(err)
		}
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	fetchedAt := eventmodels.FormatDisplayTime(now(), loc)

	history, err := provider.FetchPriceHistory(ctx, query.Ticker)
	if err != nil {
		return nil, eventmodels.NewProviderError(err)
	}

	lastBar, found := history.Last()
	if !found {
		return nil, eventmodels.NewProviderError(fmt.Errorf("no price history found for %s", query.Ticker))
	}

	maturities, err := provider.FetchMaturityDates(ctx, query.Ticker)
	if err != nil {
		return nil, eventmodels.NewProviderError(err)
	}

	if query.MaturityIndex < 0 || query.MaturityIndex >= len(maturities) {
		return nil, eventmodels.NewInvalidMaturityIndexError(query.MaturityIndex, len(maturities))
	}

	maturityDate := maturities[query.MaturityIndex]

	chain, err := provider.FetchOptionChain(ctx, query.Ticker, maturityDate)
	if err != nil {
		return nil, eventmodels.NewProviderError(err)
	}

	rows, err := chain.Select(query.OptionType)
	if err != nil {
		return nil, eventmodels.NewProviderError(err)
	}

	return &eventmodels.OptionsResult{
		Query: query,
		Snapshot: eventmodels.QuoteSnapshot{
			Symbol:         query.Ticker,
			LastClosePrice: lastBar.Close,
			MaturityDate:   maturityDate,
			FetchedAt:      fetchedAt,
		},
		Table: eventmodels.NewOptionsTable(rows, opts.Extended, loc),
	}, nil
}
