package database

import (
	"context"
	"testing"

	"github.com/LilVoxy/sensor_dashboard/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDSN(t *testing.T) {
	dsn, err := NormalizeDSN("reader:secret@tcp(db.local:3306)/telemetry?charset=utf8mb4")
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Contains(t, dsn, "tcp(db.local:3306)/telemetry")
}

func TestNormalizeDSNInvalid(t *testing.T) {
	_, err := NormalizeDSN("not a dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse mysql dsn")
}

func TestOpenRejectsBadDSN(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{DSN: "still not a dsn"})
	require.Error(t, err)
}
