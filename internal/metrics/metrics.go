// Package metrics exposes Prometheus counters for the attendance flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scan outcome labels.
const (
	ScanOK               = "ok"
	ScanInvalidOrExpired = "invalid_or_expired"
	ScanAlreadyMarked    = "already_marked"
	ScanError            = "error"
)

var (
	// SessionsCreated counts QR sessions minted by faculty.
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campusattend_sessions_created_total",
		Help: "Number of QR attendance sessions created.",
	})

	// Scans counts student scan attempts by outcome.
	Scans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusattend_scans_total",
		Help: "Number of attendance scan attempts by outcome.",
	}, []string{"result"})
)
