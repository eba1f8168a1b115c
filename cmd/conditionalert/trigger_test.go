package main

import (
	"conditionalert/pkg/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestReadChangeEvent(t *testing.T) {
	dir := t.TempDir()

	t.Run("Insert event", func(t *testing.T) {
		path := filepath.Join(dir, "insert.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"operationType": "insert",
			"ns": {"db": "fhirReporting", "coll": "results"},
			"documentKey": {"_id": "64f1"},
			"fullDocument": {
				"condition": "Influenza",
				"conditionCode": "6142004",
				"gender": "Female",
				"city": "Springfield",
				"state": "IL",
				"reportedDate": "2024-01-15T10:00:00Z"
			}
		}`), 0o600))

		event, err := readChangeEvent(path)
		require.NoError(t, err)
		assert.Equal(t, model.Insert, event.OperationType)
		assert.Equal(t, "fhirReporting", event.Namespace.Database)
		require.NotNil(t, event.FullDocument)
		assert.Equal(t, "6142004", event.FullDocument.ConditionCode)
		require.NotNil(t, event.FullDocument.ReportedDate)
		assert.Equal(t, 2024, event.FullDocument.ReportedDate.Year())
		assert.Nil(t, event.FullDocument.OnsetDate)
	})

	t.Run("Malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"operationType":`), 0o600))

		_, err := readChangeEvent(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode change event")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := readChangeEvent(filepath.Join(dir, "missing.json"))
		require.Error(t, err)
	})
}
