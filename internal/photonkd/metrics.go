package photonkd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	buildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "photonkd_build_duration_seconds",
		Help:    "The time to build a tree.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
	})

	buildsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photonkd_builds_total",
		Help: "The number of trees built.",
	})

	lastBuild = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "photonkd_last_build",
		Help: "Shape of the most recent tree.",
	}, []string{
		"stat",
	})

	membershipSpilled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photonkd_membership_spilled_total",
		Help: "Live-node memberships that exceeded the inline capacity.",
	})

	queriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photonkd_queries_total",
		Help: "The number of point-location queries.",
	})

	candidatesPerQuery = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "photonkd_query_candidates",
		Help:    "Size of the leaf list returned by a query.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)

func observeBuild(s *BuildStats) {
	buildsTotal.Inc()
	buildDuration.Observe(s.Duration.Seconds())
	lastBuild.WithLabelValues("points").Set(float64(s.Points))
	lastBuild.WithLabelValues("nodes").Set(float64(s.Nodes))
	lastBuild.WithLabelValues("leaves").Set(float64(s.Leaves))
	lastBuild.WithLabelValues("depth").Set(float64(s.MaxDepth))
	lastBuild.WithLabelValues("leaf_refs").Set(float64(s.LeafRefs))
	if s.Spilled > 0 {
		membershipSpilled.Add(float64(s.Spilled))
	}
}
