package kb

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	entailmentQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kb_entailment_queries_total",
		Help: "Total entailment queries by strategy and result",
	}, []string{"strategy", "result"})

	resolutionRounds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kb_resolution_rounds",
		Help:    "Saturation rounds per resolution query",
		Buckets: prometheus.LinearBuckets(1, 1, 10),
	})

	resolventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kb_resolvents_total",
		Help: "New clauses derived by resolution",
	})

	assertionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kb_assertions_total",
		Help: "Clauses stored by Assert",
	})
)

const (
	resultEntailed    = "entailed"
	resultNotEntailed = "not_entailed"
)
