package sms

import (
	"conditionalert/pkg/domain/model"
	"context"
	log "github.com/sirupsen/logrus"
)

// LogSender writes messages to the log instead of delivering them.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg model.NotificationMessage) error {
	log.WithFields(log.Fields{
		"notificationID": msg.ID,
		"to":             msg.Recipient,
		"from":           msg.Sender,
		"body":           msg.Body,
	}).Info("sms delivery disabled, message logged")
	return nil
}
