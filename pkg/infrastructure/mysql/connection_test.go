package mysql

import (
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestDSNString(t *testing.T) {
	dsn := DSN{User: "reporter", Password: "s3cret", Host: "db:3306", Database: "fhirReporting"}

	cfg, err := mysqldriver.ParseDSN(dsn.String())
	require.NoError(t, err)

	assert.Equal(t, "reporter", cfg.User)
	assert.Equal(t, "s3cret", cfg.Passwd)
	assert.Equal(t, "tcp", cfg.Net)
	assert.Equal(t, "db:3306", cfg.Addr)
	assert.Equal(t, "fhirReporting", cfg.DBName)
	assert.True(t, cfg.ParseTime)
	assert.True(t, cfg.MultiStatements)
}
