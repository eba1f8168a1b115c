package model

import "github.com/google/uuid"

type FailureStage string

const (
	CountStage FailureStage = "count"
	SendStage  FailureStage = "send"
)

type ConditionAlertSent struct {
	NotificationID uuid.UUID
	Condition      string
	Recipient      string
	EventCount     int64
}

func (e ConditionAlertSent) Type() string { return "ConditionAlertSent" }

type ConditionAlertFailed struct {
	NotificationID uuid.UUID
	Condition      string
	Stage          FailureStage
	Reason         string
}

func (e ConditionAlertFailed) Type() string { return "ConditionAlertFailed" }

type ConditionAlertSkipped struct {
	Condition string
	Reason    string
}

func (e ConditionAlertSkipped) Type() string { return "ConditionAlertSkipped" }
