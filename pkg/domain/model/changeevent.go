package model

import (
	"encoding/json"
	"time"
)

type OperationType string

const (
	Insert  OperationType = "insert"
	Update  OperationType = "update"
	Replace OperationType = "replace"
	Delete  OperationType = "delete"
)

type Namespace struct {
	Database   string `json:"db"`
	Collection string `json:"coll"`
}

// ChangeEvent is a single mutation of a watched collection as delivered by
// the change-capture source. FullDocument is only set for inserts.
type ChangeEvent struct {
	OperationType OperationType    `json:"operationType"`
	FullDocument  *ConditionReport `json:"fullDocument,omitempty"`
	Namespace     Namespace        `json:"ns"`
	DocumentKey   json.RawMessage  `json:"documentKey,omitempty"`
}

// ConditionReport is a reported diagnosis for one patient, stripped of
// anything that identifies the patient.
type ConditionReport struct {
	Condition     string      `json:"condition"`
	ConditionCode string      `json:"conditionCode,omitempty"`
	Gender        string      `json:"gender"`
	City          string      `json:"city"`
	State         string      `json:"state"`
	Birthdate     *ReportDate `json:"birthdate,omitempty"`
	OnsetDate     *ReportDate `json:"onsetDate,omitempty"`
	ReportedDate  *ReportDate `json:"reportedDate,omitempty"`
}

func (r *ConditionReport) Complete() bool {
	return r.Gender != "" && r.City != "" && r.State != ""
}

var reportDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ReportDate is a date on a condition report. It accepts RFC 3339 strings,
// date-only strings, epoch milliseconds and extended JSON {"$date": ...}.
// A value it cannot read decodes to the zero time instead of failing the
// event.
type ReportDate struct {
	time.Time
}

func (d *ReportDate) UnmarshalJSON(data []byte) error {
	d.Time = parseReportDate(data)
	return nil
}

func parseReportDate(data []byte) time.Time {
	var s string
	if json.Unmarshal(data, &s) == nil {
		for _, layout := range reportDateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
		return time.Time{}
	}

	var millis int64
	if json.Unmarshal(data, &millis) == nil {
		return time.UnixMilli(millis).UTC()
	}

	var extended struct {
		Date json.RawMessage `json:"$date"`
	}
	if json.Unmarshal(data, &extended) == nil && len(extended.Date) > 0 {
		var long struct {
			NumberLong string `json:"$numberLong"`
		}
		if json.Unmarshal(extended.Date, &long) == nil && long.NumberLong != "" {
			return parseReportDate([]byte(long.NumberLong))
		}
		return parseReportDate(extended.Date)
	}
	return time.Time{}
}
