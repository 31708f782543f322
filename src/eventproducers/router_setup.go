package eventproducers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
)

type RouterSetupItem struct {
	Method   string
	URL      string
	Executor eventmodels.RequestExecutor
	// NewRequest returns a fresh request, prefilled with defaults, for every call.
	NewRequest func() eventmodels.ApiRequest3
}

type RouterSetup struct {
	Router *mux.Router
	Prefix string
	Items  map[string]RouterSetupItem
}

func NewRouterSetup(prefix string, router *mux.Router) *RouterSetup {
	return &RouterSetup{
		Router: router,
		Prefix: prefix,
		Items:  make(map[string]RouterSetupItem),
	}
}

func (r *RouterSetup) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	key := fmt.Sprintf("%v %v", req.Method, req.URL.Path)
	item, found := r.Items[key]
	if !found {
		log.Errorf("No handler found for %v", key)
		w.WriteHeader(404)
		return
	}

	ApiRequestHandler3(item.NewRequest(), item.Executor, w, req)
}

// HandleFunc is a replacement for mux.HandleFunc which tags the handler's
// HTTP instrumentation with the route pattern.
func (r *RouterSetup) HandleFunc(path string, f func(http.ResponseWriter, *http.Request)) *mux.Route {
	pattern := fmt.Sprintf("%s%s", r.Prefix, path)
	handler := otelhttp.WithRouteTag(pattern, http.HandlerFunc(f))
	return r.Router.Handle(pattern, handler)
}

func (r *RouterSetup) Add(item RouterSetupItem) {
	key := fmt.Sprintf("%v %v%v", item.Method, r.Prefix, item.URL)
	r.Items[key] = item
	r.HandleFunc(item.URL, r.ServeHTTP).Methods(item.Method)
}
