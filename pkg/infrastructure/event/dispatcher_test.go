package event

import (
	"conditionalert/pkg/domain/model"
	"conditionalert/pkg/infrastructure/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type unknownEvent struct{}

func (unknownEvent) Type() string { return "Unknown" }

func TestDispatcher(t *testing.T) {
	d := NewDispatcher()

	t.Run("Sent", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.AlertsSent.WithLabelValues("Influenza"))
		require.NoError(t, d.Dispatch(model.ConditionAlertSent{NotificationID: uuid.New(), Condition: "Influenza", EventCount: 3}))
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.AlertsSent.WithLabelValues("Influenza")))
	})

	t.Run("Failed", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.AlertsFailed.WithLabelValues("Influenza", "send"))
		require.NoError(t, d.Dispatch(model.ConditionAlertFailed{Condition: "Influenza", Stage: model.SendStage, Reason: "boom"}))
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.AlertsFailed.WithLabelValues("Influenza", "send")))
	})

	t.Run("Skipped", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.AlertsSkipped.WithLabelValues("Influenza"))
		require.NoError(t, d.Dispatch(model.ConditionAlertSkipped{Condition: "Influenza"}))
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.AlertsSkipped.WithLabelValues("Influenza")))
	})

	t.Run("Unknown event", func(t *testing.T) {
		assert.Error(t, d.Dispatch(unknownEvent{}))
	})
}
