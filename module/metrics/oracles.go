package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gerreth/udacity-flight-surety/module"
)

// OracleCollector implements metric collection for the oracle fleet.
type OracleCollector struct {
	registeredIdentities prometheus.Gauge
	registrations        *prometheus.CounterVec
	pendingRegistrations prometheus.Gauge
	requestsReceived     prometheus.Counter
	matchedIdentities    prometheus.Histogram
	submissions          *prometheus.CounterVec
	submissionDuration   prometheus.Histogram
	reportsReceived      prometheus.Counter
	subscriptionDrops    *prometheus.CounterVec
}

var _ module.OracleMetrics = (*OracleCollector)(nil)

func NewOracleCollector(registerer prometheus.Registerer) *OracleCollector {
	factory := promauto.With(registerer)

	return &OracleCollector{
		registeredIdentities: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceFlightSurety,
			Subsystem: subsystemOracles,
			Name:      "registered_identities",
			Help:      "the number of oracle identities registered with the contract",
		}),
		registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceFlightSurety,
			Subsystem: subsystemOracles,
			Name:      "registrations_total",
			Help:      "the number of attempted oracle registrations, by result",
		}, []string{LabelResult}),
		pendingRegistrations: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceFlightSurety,
			Subsystem: subsystemOracles,
			Name:      "pending_registrations",
			Help:      "the number of oracle identities waiting for their registration attempt",
		}),
		requestsReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceFlightSurety,
			Subsystem: subsystemOracles,
			Name:      "requests_received_total",
			Help:      "the number of oracle request events received",
		}),
		matchedIdentities: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespaceFlightSurety,
			Subsystem: subsystemOracles,
			Name:      "matched_identities",
			Help:      "the number of fleet identities matching a request index",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceFlightSurety,
			Subsystem: subsystemOracles,
			Name:      "submissions_total",
			Help:      "the number of oracle responses submitted, by result",
		}, []string{LabelResult}),
		submissionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespaceFlightSurety,
			Subsystem: subsystemOracles,
			Name:      "submission_duration_seconds",
			Help:      "the time it takes the ledger node to accept an oracle response",
			Buckets:   prometheus.DefBuckets,
		}),
		reportsReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceFlightSurety,
			Subsystem: subsystemOracles,
			Name:      "reports_received_total",
			Help:      "the number of oracle report events received",
		}),
		subscriptionDrops: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceFlightSurety,
			Subsystem: subsystemOracles,
			Name:      "subscription_drops_total",
			Help:      "the number of times an event subscription ended with an error, by event",
		}, []string{LabelEvent}),
	}
}

func (oc *OracleCollector) OracleRegistered(registered uint) {
	oc.registrations.With(prometheus.Labels{LabelResult: ResultSuccess}).Inc()
	oc.registeredIdentities.Set(float64(registered))
}

func (oc *OracleCollector) OracleRegistrationFailed() {
	oc.registrations.With(prometheus.Labels{LabelResult: ResultFailure}).Inc()
}

func (oc *OracleCollector) PendingRegistrations(pending int) {
	oc.pendingRegistrations.Set(float64(pending))
}

func (oc *OracleCollector) RequestReceived(matched int) {
	oc.requestsReceived.Inc()
	oc.matchedIdentities.Observe(float64(matched))
}

func (oc *OracleCollector) ResponseSubmitted(duration time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	oc.submissions.With(prometheus.Labels{LabelResult: result}).Inc()
	oc.submissionDuration.Observe(duration.Seconds())
}

func (oc *OracleCollector) ReportReceived() {
	oc.reportsReceived.Inc()
}

func (oc *OracleCollector) SubscriptionDropped(event string) {
	oc.subscriptionDrops.With(prometheus.Labels{LabelEvent: event}).Inc()
}
