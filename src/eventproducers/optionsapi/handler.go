package optionsapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
	"github.com/kerrybackapps/options-market-data/src/eventproducers"
)

// optionsForm is the query submitted from the html page. Unlike the api, the
// form bounds the maturity index before fetching.
type optionsForm struct {
	eventmodels.OptionsQuery
	MaxMaturityIndex int
}

func (f *optionsForm) ParseHTTPRequest(r *http.Request) error {
	if err := f.OptionsQuery.ParseHTTPRequest(r); err != nil {
		return err
	}

	f.OptionsQuery = f.OptionsQuery.Clamp(f.MaxMaturityIndex)

	return nil
}

type handler struct {
	executor         eventmodels.RequestExecutor
	defaults         eventmodels.OptionsQuery
	maxMaturityIndex int
}

func (h *handler) newQuery() eventmodels.ApiRequest3 {
	query := h.defaults
	return &query
}

func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	form := &optionsForm{OptionsQuery: h.defaults, MaxMaturityIndex: h.maxMaturityIndex}
	data := newPageData(form.OptionsQuery, h.maxMaturityIndex)
	statusCode := http.StatusOK

	if r.URL.Query().Has("submit") {
		result, err := eventproducers.ServeApiRequest3(form, h.executor, r)
		if err != nil {
			webErr := eventmodels.AsWebError(err)
			statusCode = webErr.StatusCode
			data.Error = webErr.Message
		} else {
			data.Result = result.(*eventmodels.OptionsResult)
		}

		data.Query = form.OptionsQuery
	}

	if err := renderPage(w, statusCode, data); err != nil {
		log.Errorf("optionsapi: page: %v", err)
	}
}

func (h *handler) csv(w http.ResponseWriter, r *http.Request) {
	result, err := eventproducers.ServeApiRequest3(h.newQuery(), h.executor, r)
	if err != nil {
		webErr := eventmodels.AsWebError(err)
		if respErr := eventproducers.SetErrorResponse(webErr.Type, webErr.StatusCode, webErr, w); respErr != nil {
			log.Errorf("optionsapi: csv: failed to set error response: %v", respErr)
		}
		return
	}

	options := result.(*eventmodels.OptionsResult)
	filename := fmt.Sprintf("%s_%s_%s.csv", options.Snapshot.Symbol, options.Query.OptionType, options.Snapshot.MaturityDate)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if err := options.Table.WriteCSV(w); err != nil {
		log.Errorf("optionsapi: csv: %v", err)
	}
}

func healthz(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if err := eventproducers.SetResponse(&status, w); err != nil {
		log.Errorf("optionsapi: healthz: %v", err)
	}
}

func SetupHandler(router *mux.Router, executor eventmodels.RequestExecutor, config *eventmodels.ViewerConfigYAML) {
	h := &handler{
		executor:         executor,
		defaults:         config.DefaultQuery(),
		maxMaturityIndex: config.GetMaxMaturityIndex(),
	}

	r := eventproducers.NewRouterSetup("", router)

	r.Add(eventproducers.RouterSetupItem{
		Method:     http.MethodGet,
		URL:        "/api/options",
		Executor:   executor,
		NewRequest: h.newQuery,
	})

	r.HandleFunc("/api/options.csv", h.csv).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.HandleFunc("/", h.page).Methods(http.MethodGet)
}
