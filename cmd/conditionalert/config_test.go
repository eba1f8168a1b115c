package main

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_USER", "reporter")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "localhost:3306")
	t.Setenv("DB_NAME", "fhirReporting")
}

func TestParseEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		setRequiredEnv(t)

		c, err := parseEnv()
		require.NoError(t, err)
		assert.Equal(t, "Influenza", c.WatchCondition)
		assert.Equal(t, "+11111111111", c.SMSTo)
		assert.Equal(t, "+2222222222", c.SMSFrom)
		assert.False(t, c.CountFilterByCondition)
		assert.Equal(t, ":8080", c.ServeHTTPAddress)
		assert.Equal(t, 3*time.Minute, c.DBConnectionLifetime)
		assert.Equal(t, 8, c.KafkaConcurrency)
		assert.Empty(t, c.KafkaBrokers)
	})

	t.Run("Prefixed variables win", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("WATCH_CONDITION", "Measles")
		t.Setenv("CONDITIONALERT_WATCH_CONDITION", "COVID-19")
		t.Setenv("COUNT_FILTER_BY_CONDITION", "true")

		c, err := parseEnv()
		require.NoError(t, err)
		assert.Equal(t, "COVID-19", c.WatchCondition)
		assert.True(t, c.CountFilterByCondition)
	})

	t.Run("Missing database settings", func(t *testing.T) {
		for _, key := range []string{"DB_USER", "CONDITIONALERT_DB_USER"} {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
		_, err := parseEnv()
		assert.Error(t, err)
	})
}
