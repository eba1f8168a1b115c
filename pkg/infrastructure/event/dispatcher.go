package event

import (
	"conditionalert/pkg/domain/model"
	"conditionalert/pkg/domain/service"
	"conditionalert/pkg/infrastructure/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// NewDispatcher returns a dispatcher that records alert outcomes in the log
// and in the prometheus collectors.
func NewDispatcher() service.EventDispatcher {
	return &dispatcher{}
}

type dispatcher struct{}

func (d *dispatcher) Dispatch(event service.Event) error {
	logger := log.WithField("event", event.Type())

	switch e := event.(type) {
	case model.ConditionAlertSent:
		metrics.AlertsSent.WithLabelValues(e.Condition).Inc()
		logger.WithFields(log.Fields{
			"notificationID": e.NotificationID,
			"condition":      e.Condition,
			"recipient":      e.Recipient,
			"eventCount":     e.EventCount,
		}).Info("condition alert sent")
	case model.ConditionAlertFailed:
		metrics.AlertsFailed.WithLabelValues(e.Condition, string(e.Stage)).Inc()
		logger.WithFields(log.Fields{
			"notificationID": e.NotificationID,
			"condition":      e.Condition,
			"stage":          e.Stage,
			"reason":         e.Reason,
		}).Warn("condition alert failed")
	case model.ConditionAlertSkipped:
		metrics.AlertsSkipped.WithLabelValues(e.Condition).Inc()
		logger.WithFields(log.Fields{
			"condition": e.Condition,
			"reason":    e.Reason,
		}).Info("condition alert skipped")
	default:
		return errors.Errorf("unknown event type %s", event.Type())
	}
	return nil
}
