package metrics

import (
	"time"

	httpmetrics "github.com/slok/go-http-metrics/metrics"

	"github.com/gerreth/udacity-flight-surety/module"
)

type NoopCollector struct {
	httpmetrics.Recorder
}

var _ module.OracleMetrics = (*NoopCollector)(nil)
var _ module.RestMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector {
	return &NoopCollector{Recorder: httpmetrics.Dummy}
}

func (nc *NoopCollector) OracleRegistered(uint)                  {}
func (nc *NoopCollector) OracleRegistrationFailed()              {}
func (nc *NoopCollector) PendingRegistrations(int)               {}
func (nc *NoopCollector) RequestReceived(int)                    {}
func (nc *NoopCollector) ResponseSubmitted(time.Duration, error) {}
func (nc *NoopCollector) ReportReceived()                        {}
func (nc *NoopCollector) SubscriptionDropped(string)             {}
