package eventproducers

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
)

// ServeApiRequest3 parses and validates req, then waits for executor to produce a
// result. Errors come back as *eventmodels.WebError.
func ServeApiRequest3(req eventmodels.ApiRequest3, executor eventmodels.RequestExecutor, r *http.Request) (interface{}, error) {
	if err := req.ParseHTTPRequest(r); err != nil {
		return nil, eventmodels.NewWebError(http.StatusBadRequest, "parser", err.Error(), err)
	}

	if err := req.Validate(r); err != nil {
		return nil, eventmodels.NewWebError(http.StatusBadRequest, "validation", err.Error(), err)
	}

	resultCh := make(chan interface{}, 1)
	errCh := make(chan error, 1)

	go executor.Serve(r, req, resultCh, errCh)

	select {
	case result := <-resultCh:
		return result, nil
	case err := <-errCh:
		return nil, eventmodels.AsWebError(err)
	case <-r.Context().Done():
		return nil, eventmodels.NewWebError(http.StatusServiceUnavailable, "canceled", "request canceled", r.Context().Err())
	}
}

func ApiRequestHandler3(req eventmodels.ApiRequest3, executor eventmodels.RequestExecutor, w http.ResponseWriter, r *http.Request) {
	result, err := ServeApiRequest3(req, executor, r)
	if err != nil {
		webErr := eventmodels.AsWebError(err)
		if respErr := SetErrorResponse(webErr.Type, webErr.StatusCode, webErr, w); respErr != nil {
			log.Errorf("ApiRequestHandler3: failed to set error response: %v", respErr)
		}
		return
	}

	if err := SetResponse(&result, w); err != nil {
		log.Errorf("ApiRequestHandler3: failed to set response: %v", err)
	}
}
