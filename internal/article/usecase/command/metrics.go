package command

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sync outcome label values
const (
	OutcomeSaved    = "saved"
	OutcomeFiltered = "filtered"
	OutcomeError    = "error"
)

// SyncMetrics records synchronization outcomes
type SyncMetrics struct {
	articles *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewSyncMetrics registers the sync metrics with reg
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	factory := promauto.With(reg)
	return &SyncMetrics{
		articles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "news_sync_articles_total",
				Help: "Articles handled by synchronization runs, by outcome",
			},
			[]string{"outcome"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "news_sync_duration_seconds",
				Help:    "Duration of synchronization runs in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
	}
}

func (m *SyncMetrics) observe(outcome string) {
	if m != nil {
		m.articles.WithLabelValues(outcome).Inc()
	}
}

func (m *SyncMetrics) observeDuration(seconds float64) {
	if m != nil {
		m.duration.Observe(seconds)
	}
}
