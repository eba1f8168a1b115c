package service

import (
	"conditionalert/pkg/domain/model"
	"context"
	"fmt"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const DefaultCondition = "Influenza"

type Event interface{ Type() string }
type EventDispatcher interface{ Dispatch(event Event) error }

type Config struct {
	// Condition is the value of fullDocument.condition that raises an alert.
	Condition string
	Recipient string
	Sender    string
	// Collection restricts alerts to change events from one collection.
	// Empty accepts events from any collection.
	Collection string
}

type ConditionAlertHandler interface {
	Handle(ctx context.Context, event model.ChangeEvent) error
}

func NewConditionAlertHandler(cfg Config, counter model.EventCounter, sender model.SMSSender, dispatcher EventDispatcher) ConditionAlertHandler {
	if cfg.Condition == "" {
		cfg.Condition = DefaultCondition
	}
	return &conditionAlertHandler{cfg: cfg, counter: counter, sender: sender, dispatcher: dispatcher}
}

type conditionAlertHandler struct {
	cfg        Config
	counter    model.EventCounter
	sender     model.SMSSender
	dispatcher EventDispatcher
}

func (h *conditionAlertHandler) Handle(ctx context.Context, event model.ChangeEvent) error {
	if !h.matches(event) {
		return nil
	}
	report := event.FullDocument
	logger := log.WithFields(log.Fields{
		"condition":  report.Condition,
		"collection": event.Namespace.Collection,
	})

	if !report.Complete() {
		logger.WithFields(log.Fields{
			"gender": report.Gender,
			"city":   report.City,
			"state":  report.State,
		}).Warn(model.ErrIncompleteReport.Error())
		h.dispatch(model.ConditionAlertSkipped{Condition: report.Condition, Reason: model.ErrIncompleteReport.Error()})
		return nil
	}

	notificationID := uuid.New()
	logger = logger.WithField("notificationID", notificationID)
	logger.Info("condition event received, sending notification")

	count, err := h.counter.Count(ctx)
	if err != nil {
		logger.WithError(err).Error(model.ErrCountAccess.Error())
		h.dispatch(model.ConditionAlertFailed{
			NotificationID: notificationID,
			Condition:      report.Condition,
			Stage:          model.CountStage,
			Reason:         err.Error(),
		})
		return nil
	}
	logger.WithField("eventCount", count).Infof("%d %s events.", count, report.Condition)

	msg := model.NotificationMessage{
		ID:        notificationID,
		Recipient: h.cfg.Recipient,
		Sender:    h.cfg.Sender,
		Body:      FormatAlertBody(report),
	}

	if err := h.sender.Send(ctx, msg); err != nil {
		logger.WithError(err).Error(model.ErrSendDelivery.Error())
		h.dispatch(model.ConditionAlertFailed{
			NotificationID: notificationID,
			Condition:      report.Condition,
			Stage:          model.SendStage,
			Reason:         err.Error(),
		})
		return fmt.Errorf("%w: %v", model.ErrSendDelivery, err)
	}

	h.dispatch(model.ConditionAlertSent{
		NotificationID: notificationID,
		Condition:      report.Condition,
		Recipient:      msg.Recipient,
		EventCount:     count,
	})
	return nil
}

// FormatAlertBody renders the SMS text for a report. Field values are used
// verbatim.
func FormatAlertBody(report *model.ConditionReport) string {
	return fmt.Sprintf("%s in %s, %s has tested positive for %s", report.Gender, report.City, report.State, report.Condition)
}

func (h *conditionAlertHandler) matches(event model.ChangeEvent) bool {
	if event.OperationType != model.Insert {
		return false
	}
	if event.FullDocument == nil || event.FullDocument.Condition != h.cfg.Condition {
		return false
	}
	if h.cfg.Collection != "" && event.Namespace.Collection != "" && event.Namespace.Collection != h.cfg.Collection {
		return false
	}
	return true
}

func (h *conditionAlertHandler) dispatch(event Event) {
	if h.dispatcher == nil {
		return
	}
	if err := h.dispatcher.Dispatch(event); err != nil {
		log.WithError(err).WithField("event", event.Type()).Error("failed to dispatch event")
	}
}
