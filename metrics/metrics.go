// Package metrics exposes Prometheus instrumentation for codec.Codec,
// wired the way client_golang is used across the retrieval pack: a
// struct of pre-registered collectors, constructed once and passed in as
// an option rather than reached for via package-global state.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Codec holds the collectors codec.Codec increments around each
// Encode/Decode call. The zero value is not usable; build one with New
// and register it with a prometheus.Registerer.
type Codec struct {
	EncodeTotal   *prometheus.CounterVec
	DecodeTotal   *prometheus.CounterVec
	ErrorsTotal   *prometheus.CounterVec
	EncodedBytes  prometheus.Histogram
	SkippedFields prometheus.Counter
}

// New constructs a Codec metrics bundle. class is the label name used to
// distinguish record types on the counters.
func New(namespace string) *Codec {
	labels := []string{"class"}

	return &Codec{
		EncodeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "encode_total",
			Help:      "Number of records encoded, by class.",
		}, labels),
		DecodeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "decode_total",
			Help:      "Number of records decoded, by class.",
		}, labels),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "errors_total",
			Help:      "Number of encode/decode failures, by class.",
		}, []string{"class", "op"}),
		EncodedBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "encoded_bytes",
			Help:      "Size in bytes of each encoded record.",
			Buckets:   prometheus.ExponentialBuckets(32, 2, 12),
		}),
		SkippedFields: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "skipped_fields_total",
			Help:      "Number of encoded fields skipped on decode because the target descriptor didn't know their index.",
		}),
	}
}

// MustRegister registers every collector with r, panicking on collision —
// meant for startup wiring, mirroring prometheus.MustRegister's own
// contract.
func (m *Codec) MustRegister(r prometheus.Registerer) {
	r.MustRegister(m.EncodeTotal, m.DecodeTotal, m.ErrorsTotal, m.EncodedBytes, m.SkippedFields)
}
