package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels every signup/unregister attempt.
const (
	OutcomeOK            = "ok"
	OutcomeNotFound      = "not_found"
	OutcomeDuplicate     = "duplicate"
	OutcomeNotRegistered = "not_registered"
	OutcomeError         = "error"
)

var (
	signupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_api",
		Subsystem: "directory",
		Name:      "signups_total",
		Help:      "Signup attempts by outcome.",
	}, []string{"outcome"})
	unregisterCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_api",
		Subsystem: "directory",
		Name:      "unregistrations_total",
		Help:      "Unregister attempts by outcome.",
	}, []string{"outcome"})
	rosterGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "activities_api",
		Subsystem: "directory",
		Name:      "roster_size",
		Help:      "Current number of participants per activity.",
	}, []string{"activity"})
)

func init() {
	prometheus.MustRegister(signupCounter, unregisterCounter, rosterGauge)
}

func RecordSignup(outcome string) {
	signupCounter.WithLabelValues(outcome).Inc()
}

func RecordUnregister(outcome string) {
	unregisterCounter.WithLabelValues(outcome).Inc()
}

func RecordRosterSize(activity string, size int) {
	rosterGauge.WithLabelValues(activity).Set(float64(size))
}
