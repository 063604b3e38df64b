// Package metrics holds the Prometheus collectors for the activation
// service. Collectors register with the default registry on import.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	derivationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activation_derivations_total",
		Help: "Progress derivations by completion source (cache or records)",
	}, []string{"source"})

	nudgesFiredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activation_nudges_fired_total",
		Help: "Nudges fired by schedule day",
	}, []string{"day"})

	nextStepTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activation_next_step_total",
		Help: "Progress reports by next step; complete when every step is done",
	}, []string{"step"})

	cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activation_cache_lookups_total",
		Help: "Cache lookups by cache name and result",
	}, []string{"cache", "result"})
)

// RecordDerivation counts one derivation. fromCache is true when the
// completion came from the memo cache.
func RecordDerivation(fromCache bool) {
	source := "records"
	if fromCache {
		source = "cache"
	}
	derivationsTotal.WithLabelValues(source).Inc()
}

// RecordNudgeFired counts one fired nudge.
func RecordNudgeFired(day int) {
	nudgesFiredTotal.WithLabelValues(normalizeDayLabel(day)).Inc()
}

// RecordNextStep counts the next step of one report. An empty step means the
// workspace has completed activation.
func RecordNextStep(step string) {
	nextStepTotal.WithLabelValues(normalizeStepLabel(step)).Inc()
}

// RecordCacheLookup counts one cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

func normalizeDayLabel(day int) string {
	switch day {
	case 2, 4, 7, 10, 12:
		return strconv.Itoa(day)
	default:
		return "other"
	}
}

func normalizeStepLabel(step string) string {
	switch step {
	case "describe", "diagnostic", "finalize", "milestones", "review":
		return step
	case "":
		return "complete"
	default:
		return "unknown"
	}
}
