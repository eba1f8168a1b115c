package tests

import (
	"conditionalert/pkg/domain/model"
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestDecodeReportDates(t *testing.T) {
	reported := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		value    string
		expected time.Time
	}{
		{"RFC3339", `"2024-01-15T10:00:00Z"`, reported},
		{"RFC3339 with offset", `"2024-01-15T12:00:00+02:00"`, reported},
		{"Date only", `"1985-02-11"`, time.Date(1985, 2, 11, 0, 0, 0, 0, time.UTC)},
		{"Extended json string", `{"$date":"2024-01-15T10:00:00Z"}`, reported},
		{"Extended json millis", `{"$date":1705312800000}`, reported},
		{"Extended json number long", `{"$date":{"$numberLong":"1705312800000"}}`, reported},
		{"Epoch millis", `1705312800000`, reported},
		{"Unreadable string", `"last tuesday"`, time.Time{}},
		{"Unreadable object", `{"year":1985}`, time.Time{}},
		{"Boolean", `true`, time.Time{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			raw := `{"operationType":"insert","fullDocument":{"condition":"Influenza","gender":"Female","city":"Springfield","state":"IL","birthdate":` + c.value + `}}`

			var event model.ChangeEvent
			require.NoError(t, json.Unmarshal([]byte(raw), &event))
			require.NotNil(t, event.FullDocument)
			require.NotNil(t, event.FullDocument.Birthdate)
			assert.True(t, c.expected.Equal(event.FullDocument.Birthdate.Time), "got %s", event.FullDocument.Birthdate.Time)
		})
	}

	t.Run("Null date", func(t *testing.T) {
		var event model.ChangeEvent
		require.NoError(t, json.Unmarshal([]byte(`{"operationType":"insert","fullDocument":{"condition":"Influenza","onsetDate":null}}`), &event))
		assert.Nil(t, event.FullDocument.OnsetDate)
	})
}

func TestHandleInsertWithUnusualDates(t *testing.T) {
	handler, _, smsSender, _ := setup(t)

	raw := `{
		"operationType": "insert",
		"fullDocument": {
			"condition": "Influenza",
			"gender": "Female",
			"city": "Springfield",
			"state": "IL",
			"birthdate": "1985-02-11",
			"onsetDate": {"$date": "2024-01-12T00:00:00Z"},
			"reportedDate": "not a date"
		}
	}`

	var event model.ChangeEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &event))
	require.NoError(t, handler.Handle(context.Background(), event))

	require.Equal(t, 1, smsSender.SendCount())
	assert.Equal(t, "Female in Springfield, IL has tested positive for Influenza", smsSender.Messages()[0].Body)
}
