package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/gig-sync/internal/logger"
)

func TestHealthService_Ping(t *testing.T) {
	db, sqlMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	health := NewHealthService(db, logger.Nop())

	sqlMock.ExpectPing()
	require.NoError(t, health.Ping(context.Background()))

	sqlMock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = health.Ping(context.Background())
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)
	assert.Contains(t, err.Error(), "connection refused")

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
