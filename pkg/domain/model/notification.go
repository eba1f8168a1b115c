package model

import (
	"context"
	"errors"
	"github.com/google/uuid"
)

var (
	ErrIncompleteReport = errors.New("condition report is missing gender, city or state")
	ErrCountAccess      = errors.New("failed to count condition events")
	ErrSendDelivery     = errors.New("failed to deliver notification")
)

type NotificationMessage struct {
	ID        uuid.UUID
	Recipient string
	Sender    string
	Body      string
}

type EventCounter interface {
	Count(ctx context.Context) (int64, error)
}

type SMSSender interface {
	Send(ctx context.Context, msg NotificationMessage) error
}
