package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	setPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gymlog",
		Subsystem: "persistence",
		Name:      "last_set_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent set persisted to Postgres.",
	})
	setDeleteGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gymlog",
		Subsystem: "persistence",
		Name:      "last_set_deleted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent set deleted from Postgres.",
	})
)

func init() {
	prometheus.MustRegister(setPersistGauge, setDeleteGauge)
}

// RecordSetPersisted updates the persistence watermark gauge.
func RecordSetPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	setPersistGauge.Set(float64(ts.Unix()))
}

// RecordSetDeleted updates the deletion watermark gauge.
func RecordSetDeleted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	setDeleteGauge.Set(float64(ts.Unix()))
}
