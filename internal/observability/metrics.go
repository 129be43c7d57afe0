package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	refreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_board",
		Subsystem: "board",
		Name:      "refresh_total",
		Help:      "Activity list refreshes, labeled by outcome.",
	}, []string{"outcome"})
	actionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_board",
		Subsystem: "board",
		Name:      "action_total",
		Help:      "Signup and removal attempts, labeled by action and outcome.",
	}, []string{"action", "outcome"})
	activitiesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activity_board",
		Subsystem: "board",
		Name:      "activities_rendered",
		Help:      "Number of activity cards in the current snapshot.",
	})
	lastRefreshGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activity_board",
		Subsystem: "board",
		Name:      "last_refresh_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful refresh.",
	})
)

func init() {
	prometheus.MustRegister(refreshTotal, actionTotal, activitiesGauge, lastRefreshGauge)
}

// RecordRefresh counts one refresh and advances the freshness watermark on
// success.
func RecordRefresh(ok bool) {
	if ok {
		refreshTotal.WithLabelValues("success").Inc()
		lastRefreshGauge.Set(float64(time.Now().Unix()))
		return
	}
	refreshTotal.WithLabelValues("failure").Inc()
}

// RecordActivitiesRendered updates the card-count gauge.
func RecordActivitiesRendered(count int) {
	activitiesGauge.Set(float64(count))
}

// RecordAction counts one signup or removal attempt.
func RecordAction(action, outcome string) {
	actionTotal.WithLabelValues(action, outcome).Inc()
}
