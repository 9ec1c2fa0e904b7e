package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOracleCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewOracleCollector(registry)

	collector.OracleRegistered(1)
	collector.OracleRegistered(2)
	collector.OracleRegistrationFailed()
	collector.PendingRegistrations(3)
	collector.PendingRegistrations(1)
	collector.RequestReceived(2)
	collector.ResponseSubmitted(time.Millisecond, nil)
	collector.ResponseSubmitted(time.Millisecond, errors.New("rejected"))
	collector.ResponseSubmitted(time.Millisecond, errors.New("rejected"))
	collector.ReportReceived()
	collector.SubscriptionDropped("OracleRequest")

	assert.Equal(t, float64(2), testutil.ToFloat64(collector.registeredIdentities))
	assert.Equal(t, float64(2), testutil.ToFloat64(collector.registrations.With(prometheus.Labels{LabelResult: ResultSuccess})))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.registrations.With(prometheus.Labels{LabelResult: ResultFailure})))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.pendingRegistrations))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.requestsReceived))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.submissions.With(prometheus.Labels{LabelResult: ResultSuccess})))
	assert.Equal(t, float64(2), testutil.ToFloat64(collector.submissions.With(prometheus.Labels{LabelResult: ResultFailure})))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.reportsReceived))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.subscriptionDrops.With(prometheus.Labels{LabelEvent: "OracleRequest"})))

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "flight_surety_oracles_registered_identities")
	assert.Contains(t, names, "flight_surety_oracles_matched_identities")
	assert.Contains(t, names, "flight_surety_oracles_pending_registrations")
	assert.Contains(t, names, "flight_surety_oracles_submission_duration_seconds")
}

func TestOracleCollector_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewOracleCollector(registry)

	assert.Panics(t, func() {
		NewOracleCollector(registry)
	})
}
