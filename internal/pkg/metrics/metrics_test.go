package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Idempotent(t *testing.T) {
	require.NotPanics(t, func() {
		Register()
		Register()
	})

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["commerce_orders_created_total"])
	assert.True(t, names["commerce_whatsapp_purchase_intents_total"])
}

func TestRecommendationRunsByBranch(t *testing.T) {
	before := testutil.ToFloat64(RecommendationRuns.WithLabelValues("popular"))
	RecommendationRuns.WithLabelValues("popular").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RecommendationRuns.WithLabelValues("popular")))
}
