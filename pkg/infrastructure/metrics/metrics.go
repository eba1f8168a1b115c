package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ChangeEventsReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "conditionalert_change_events_received_total",
		Help: "Change events delivered to the handler, by source",
	}, []string{"source"})
	ChangeEventsMalformed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "conditionalert_change_events_malformed_total",
		Help: "Change events that could not be decoded, by source",
	}, []string{"source"})
	AlertsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "conditionalert_alerts_sent_total",
		Help: "Notifications accepted by the SMS provider",
	}, []string{"condition"})
	AlertsFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "conditionalert_alerts_failed_total",
		Help: "Notifications abandoned, by failing stage",
	}, []string{"condition", "stage"})
	AlertsSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "conditionalert_alerts_skipped_total",
		Help: "Matching reports skipped because they were incomplete",
	}, []string{"condition"})
	HandleDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "conditionalert_handle_seconds",
		Help: "Time to handle one change event",
	}, []string{"source"})
)

func init() {
	prometheus.MustRegister(
		ChangeEventsReceived,
		ChangeEventsMalformed,
		AlertsSent,
		AlertsFailed,
		AlertsSkipped,
		HandleDuration,
	)
}
