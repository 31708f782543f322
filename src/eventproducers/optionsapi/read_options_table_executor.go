package optionsapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
	"github.com/kerrybackapps/options-market-data/src/eventservices"
)

type ReadOptionsTableExecutor struct {
	Provider eventmodels.MarketDataProvider
	Extended bool
	Location *time.Location
	Now      func() time.Time
}

func (s *ReadOptionsTableExecutor) Serve(r *http.Request, request eventmodels.ApiRequest3, resultCh chan interface{}, errCh chan error) {
	var query eventmodels.OptionsQuery
	switch req := request.(type) {
	case *eventmodels.OptionsQuery:
		query = *req
	case *optionsForm:
		query = req.OptionsQuery
	default:
		errCh <- fmt.Errorf("ReadOptionsTableExecutor: unexpected request type %T", request)
		return
	}

	result, err := eventservices.FetchOptionsTable(r.Context(), s.Provider, query, eventservices.FetchOptionsTableOptions{
		Extended: s.Extended,
		Location: s.Location,
		Now:      s.Now,
	})

	if err != nil {
		errCh <- err
		return
	}

	resultCh <- result
}
