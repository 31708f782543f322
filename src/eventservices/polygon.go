package eventservices

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
)

// PolygonPriceHistory reads daily closes from polygon.io aggregates.
type PolygonPriceHistory struct {
	Client *polygon.Client
	now    func() time.Time
}

func (p *PolygonPriceHistory) FetchPriceHistory(ctx context.Context, symbol eventmodels.StockSymbol) (eventmodels.PriceBars, error) {
	to := p.now()
	from := to.AddDate(0, -1, 0)

	log.Debugf("fetching polygon daily aggregates for %s", symbol)

	params := models.ListAggsParams{
		Ticker:     symbol.String(),
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(from),
		To:         models.Millis(to),
	}.WithOrder(models.Asc).WithAdjusted(true)

	iter := p.Client.ListAggs(ctx, params)

	var bars eventmodels.PriceBars
	for iter.Next() {
		bars = append(bars, eventmodels.PriceBar{
			Timestamp: time.Time(iter.Item().Timestamp),
			Close:     decimal.NewFromFloat(iter.Item().Close),
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("FetchPriceHistory: polygon aggregates for %s: %w", symbol, err)
	}

	return bars, nil
}

func NewPolygonPriceHistory(apiKey string) *PolygonPriceHistory {
	return &PolygonPriceHistory{
		Client: polygon.New(apiKey),
		now:    time.Now,
	}
}

// PriceHistoryOverride serves price history from a different source than the option chain.
type PriceHistoryOverride struct {
	eventmodels.MarketDataProvider
	History eventmodels.PriceHistoryFetcher
}

func (o *PriceHistoryOverride) FetchPriceHistory(ctx context.Context, symbol eventmodels.StockSymbol) (eventmodels.PriceBars, error) {
	return o.History.FetchPriceHistory(ctx, symbol)
}

func NewPriceHistoryOverride(provider eventmodels.MarketDataProvider, history eventmodels.PriceHistoryFetcher) *PriceHistoryOverride {
	return &PriceHistoryOverride{
		MarketDataProvider: provider,
		History:            history,
	}
}
