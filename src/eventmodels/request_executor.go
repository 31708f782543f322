package eventmodels

import "net/http"

// RequestExecutor serves a parsed and validated ApiRequest3. Exactly one of
// resultCh or errCh receives a value.
type RequestExecutor interface {
	Serve(r *http.Request, req ApiRequest3, resultCh chan interface{}, errCh chan error)
}
