package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

// counterValue — значение счётчика name (с опциональной меткой result) из реестра.
func counterValue(t *testing.T, m *Metrics, name, result string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}

		for _, metric := range mf.GetMetric() {
			if result == "" || labelValue(metric, "result") == result {
				return metric.GetCounter().GetValue()
			}
		}
	}

	return 0
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}

	return ""
}

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := New()

	m.Post(ResultOK)
	m.Post(ResultOK)
	m.Post(ResultFailed)
	m.RecordsDropped(3)
	m.RecordsDropped(0)
	m.DuplicatesDropped(2)
	m.RelevantTexts(5)
	m.RelevantTexts(-1)

	require.Equal(t, 2.0, counterValue(t, m, "harvester_posts_total", ResultOK))
	require.Equal(t, 1.0, counterValue(t, m, "harvester_posts_total", ResultFailed))
	require.Equal(t, 0.0, counterValue(t, m, "harvester_posts_total", ResultSkipped))
	require.Equal(t, 3.0, counterValue(t, m, "harvester_records_dropped_total", ""))
	require.Equal(t, 2.0, counterValue(t, m, "harvester_duplicates_dropped_total", ""))
	require.Equal(t, 5.0, counterValue(t, m, "harvester_relevant_texts_total", ""))
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics

	require.NotPanics(t, func() {
		m.Post(ResultOK)
		m.RecordsDropped(1)
		m.DuplicatesDropped(1)
		m.RelevantTexts(1)
	})
	require.Nil(t, m.Registry())
}
