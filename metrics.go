package pathfinder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchTotal counts single-goal searches by result
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfinder_search_total",
		Help: "Total single-goal searches by result",
	}, []string{"result"})

	// searchExpandedNodes tracks how many nodes a search expanded
	searchExpandedNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathfinder_search_expanded_nodes",
		Help:    "Nodes expanded per single-goal search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~260k
	})

	// tourPermutationsTotal counts goal orderings evaluated by Tour
	tourPermutationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathfinder_tour_permutations_total",
		Help: "Total goal orderings evaluated by tours",
	})

	// tourSegmentCacheHits counts segment searches answered from the tour cache
	tourSegmentCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathfinder_tour_segment_cache_hits_total",
		Help: "Segment searches answered from the per-tour cache",
	})

	// tourDuration tracks tour latency
	tourDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathfinder_tour_duration_seconds",
		Help:    "Tour duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
	})
)

const (
	resultFound      = "found"
	resultNoSolution = "no_solution"
	resultCancelled  = "cancelled"
)
