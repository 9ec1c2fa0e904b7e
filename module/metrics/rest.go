package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	metricsProm "github.com/slok/go-http-metrics/metrics/prometheus"

	"github.com/gerreth/udacity-flight-surety/module"
)

// NewRestCollector returns a recorder for the HTTP handlers of the status surface.
func NewRestCollector(registerer prometheus.Registerer) module.RestMetrics {
	return metricsProm.NewRecorder(metricsProm.Config{
		Prefix:   namespaceFlightSurety + "_" + subsystemRest,
		Registry: registerer,
	})
}
