package module

import (
	"time"

	httpmetrics "github.com/slok/go-http-metrics/metrics"
)

// OracleMetrics captures the health of the oracle fleet.
type OracleMetrics interface {
	// OracleRegistered is called when an identity completed registration, with the
	// number of registered identities afterwards.
	OracleRegistered(registered uint)

	// OracleRegistrationFailed is called when registering an identity failed.
	OracleRegistrationFailed()

	// PendingRegistrations is called with the number of identities waiting for their
	// registration attempt whenever that number changes.
	PendingRegistrations(pending int)

	// RequestReceived is called for every delivered request event, with the number of
	// identities matching the request index.
	RequestReceived(matched int)

	// ResponseSubmitted is called once a submission completed, successfully or not.
	ResponseSubmitted(duration time.Duration, err error)

	// ReportReceived is called for every delivered report event.
	ReportReceived()

	// SubscriptionDropped is called whenever a subscription to the given event ended with an error.
	SubscriptionDropped(event string)
}

// RestMetrics instruments the status surface.
type RestMetrics interface {
	// Example recorder taken from:
	// https://github.com/slok/go-http-metrics/blob/master/metrics/prometheus/prometheus.go
	httpmetrics.Recorder
}
