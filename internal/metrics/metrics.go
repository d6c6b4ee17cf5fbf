// metrics — счётчики прогона harvester-а на выделенном prometheus-реестре.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Значения метки result у harvester_posts_total.
const (
	ResultOK      = "ok"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"
)

// Metrics хранит счётчики прогона.
// Методы безопасны для nil-получателя: сервис можно собрать без метрик.
type Metrics struct {
	registry   *prometheus.Registry
	posts      *prometheus.CounterVec
	dropped    prometheus.Counter
	duplicates prometheus.Counter
	relevant   prometheus.Counter
}

// New создаёт реестр с go/process-коллекторами и счётчиками harvester-а.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		posts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harvester_posts_total",
			Help: "Posts handled by the harvester, by result.",
		}, []string{"result"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvester_records_dropped_total",
			Help: "Records dropped by sequencing because their parent is missing or cyclic.",
		}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvester_duplicates_dropped_total",
			Help: "Duplicate records removed while flattening.",
		}),
		relevant: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvester_relevant_texts_total",
			Help: "Comment texts classified as relevant.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.posts, m.dropped, m.duplicates, m.relevant,
	)

	return m
}

// Registry возвращает реестр для promhttp.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

// Post учитывает обработку поста с результатом result.
func (m *Metrics) Post(result string) {
	if m == nil {
		return
	}

	m.posts.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordsDropped(n int) {
	if m == nil || n <= 0 {
		return
	}

	m.dropped.Add(float64(n))
}

func (m *Metrics) DuplicatesDropped(n int) {
	if m == nil || n <= 0 {
		return
	}

	m.duplicates.Add(float64(n))
}

func (m *Metrics) RelevantTexts(n int) {
	if m == nil || n <= 0 {
		return
	}

	m.relevant.Add(float64(n))
}
