package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/slok/go-http-metrics/middleware"
	"github.com/slok/go-http-metrics/middleware/std"

	"github.com/gerreth/udacity-flight-surety/module"
	"github.com/gerreth/udacity-flight-surety/module/oracles"
)

type route struct {
	Name    string
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

func routes(h *Handlers) []route {
	return []route{
		{
			Name:    "getAPI",
			Method:  http.MethodGet,
			Pattern: "/api",
			Handler: h.API,
		},
		{
			Name:    "getOracles",
			Method:  http.MethodGet,
			Pattern: "/v1/oracles",
			Handler: h.Oracles,
		},
		{
			Name:    "getOracle",
			Method:  http.MethodGet,
			Pattern: "/v1/oracles/{account}",
			Handler: h.Oracle,
		},
	}
}

// NewRouter returns the router of the status surface. Every route is instrumented
// under its name, so metric cardinality does not depend on request paths.
func NewRouter(log zerolog.Logger, reporter *oracles.StatusReporter, restCollector module.RestMetrics) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(LoggingMiddleware(log))

	metricsMiddleware := middleware.New(middleware.Config{Recorder: restCollector})
	handlers := NewHandlers(log, reporter)

	for _, r := range routes(handlers) {
		router.
			Methods(r.Method).
			Path(r.Pattern).
			Name(r.Name).
			Handler(std.Handler(r.Name, metricsMiddleware, r.Handler))
	}

	return router
}
