package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskIO = errors.New("disk I/O error")

func newMockDB(t *testing.T) (*Database, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return &Database{db: sqlDB, dbPath: "mock"}, mock
}

var upsertQuery = regexp.QuoteMeta("INSERT INTO settings (key, value, updated_at)")

func TestSetSettings_RollsBackOnExecError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(upsertQuery).WithArgs("percentPlayedRequired", "90").WillReturnError(errDiskIO)
	mock.ExpectRollback()

	err := db.SetSettings(context.Background(), map[string]string{"percentPlayedRequired": "90"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskIO)
	assert.Contains(t, err.Error(), "store setting percentPlayedRequired")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSettings_RollbackFailureIsJoined(t *testing.T) {
	db, mock := newMockDB(t)
	rbErr := errors.New("rollback failed")

	mock.ExpectBegin()
	mock.ExpectExec(upsertQuery).WillReturnError(errDiskIO)
	mock.ExpectRollback().WillReturnError(rbErr)

	err := db.SetSettings(context.Background(), map[string]string{"moveToRecycleBin": "false"})
	assert.ErrorIs(t, err, errDiskIO)
	assert.ErrorIs(t, err, rbErr)
}

func TestSetSettings_BeginError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin().WillReturnError(errDiskIO)

	err := db.SetSettings(context.Background(), map[string]string{"deleteVideo": "true"})
	assert.ErrorIs(t, err, errDiskIO)
	assert.Contains(t, err.Error(), "begin settings transaction")
}

func TestSetSettings_Commits(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(upsertQuery).WithArgs("deleteAudio", "false").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, db.SetSettings(context.Background(), map[string]string{"deleteAudio": "false"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllSettings_QueryError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT key, value FROM settings")).WillReturnError(errDiskIO)

	got, err := db.AllSettings(context.Background())
	assert.ErrorIs(t, err, errDiskIO)
	assert.Nil(t, got)
}

func TestAllSettings_RowError(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("percentPlayedRequired", "80").
		RowError(0, errDiskIO)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT key, value FROM settings")).WillReturnRows(rows)

	_, err := db.AllSettings(context.Background())
	assert.ErrorIs(t, err, errDiskIO)
}

func TestPing_Error(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectPing().WillReturnError(errDiskIO)

	db := &Database{db: sqlDB}
	assert.ErrorIs(t, db.Ping(context.Background()), errDiskIO)
}
