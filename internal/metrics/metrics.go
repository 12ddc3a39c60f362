package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// AttemptsTotal counts remote analysis attempts by outcome kind.
	AttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "watch_appraiser",
		Subsystem: "analysis",
		Name:      "attempts_total",
		Help:      "Total number of remote analysis attempts, labeled by outcome.",
	}, []string{"outcome"})

	// AnalysesTotal counts finished analyses by final outcome.
	AnalysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "watch_appraiser",
		Subsystem: "analysis",
		Name:      "analyses_total",
		Help:      "Total number of analyses, labeled by final outcome.",
	}, []string{"outcome"})

	// AnalysisDurationSeconds is the end-to-end time of one analysis including backoff.
	AnalysisDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "watch_appraiser",
		Subsystem: "analysis",
		Name:      "duration_seconds",
		Help:      "End-to-end analysis time including retries and backoff.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120, 300},
	}, []string{"outcome"})

	// NormalizeFallbackTotal counts images sent unnormalized after a normalizer failure.
	NormalizeFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "watch_appraiser",
		Subsystem: "imaging",
		Name:      "normalize_fallback_total",
		Help:      "Total number of images analyzed without normalization because normalizing failed.",
	})

	// TokensTotal counts model tokens by direction (input, output).
	TokensTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "watch_appraiser",
		Subsystem: "llm",
		Name:      "tokens_total",
		Help:      "Total number of model tokens used, labeled by direction.",
	}, []string{"direction"})

	// CostUSDTotal accumulates the estimated model cost.
	CostUSDTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "watch_appraiser",
		Subsystem: "llm",
		Name:      "cost_usd_total",
		Help:      "Estimated model cost in USD.",
	})

	// VisionCacheTotal counts response cache lookups by result (hit, miss).
	VisionCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "watch_appraiser",
		Subsystem: "llm",
		Name:      "vision_cache_total",
		Help:      "Total number of vision cache lookups, labeled by result.",
	}, []string{"result"})
)

// Register registers the metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			AttemptsTotal,
			AnalysesTotal,
			AnalysisDurationSeconds,
			NormalizeFallbackTotal,
			TokensTotal,
			CostUSDTotal,
			VisionCacheTotal,
		)
	})
}
