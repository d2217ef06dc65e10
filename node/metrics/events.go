package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nipopow"

var (
	blocksExtended = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blocks_extended_total",
		Help:      "Number of blocks appended to the chain.",
	})

	blockLevel = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "block_level",
		Help:      "Superblock level of the appended blocks.",
		Buckets:   prometheus.LinearBuckets(0, 1, 16),
	})

	proofsBuilt = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proofs_built_total",
		Help:      "Number of built proofs.",
	})

	proofEntries = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "proof_entries",
		Help:      "Number of headers in the built proofs.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	proofVerifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proof_verifications_total",
		Help:      "Number of verified proofs by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(blocksExtended, blockLevel, proofsBuilt, proofEntries, proofVerifications)
}

// ObserveBlock records an appended block of the given level.
func ObserveBlock(level int) {
	blocksExtended.Inc()
	blockLevel.Observe(float64(level))
}

// ObserveProof records a built proof.
func ObserveProof(entries int) {
	proofsBuilt.Inc()
	proofEntries.Observe(float64(entries))
}

// ObserveVerification records the outcome of a proof verification.
func ObserveVerification(ok bool) {
	result := "invalid"
	if ok {
		result = "valid"
	}
	proofVerifications.WithLabelValues(result).Inc()
}
