package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationMetricsCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewConversationMetrics(reg)

	m.ObserveTurn("greeting")
	m.ObserveTurn("greeting")
	m.ObserveBooking("confirmed")
	m.ObserveLookup("not_found")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.turnsTotal.WithLabelValues("greeting")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.bookingsTotal.WithLabelValues("confirmed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.lookupsTotal.WithLabelValues("not_found")))

	count, err := testutil.GatherAndCount(reg,
		"intake_conversation_turns_total",
		"intake_conversation_bookings_total",
		"intake_conversation_code_lookups_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *ConversationMetrics
	m.ObserveTurn("greeting")
	m.ObserveBooking("failed")
	m.ObserveLookup("found")
}
