package session_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/permission"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/session"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (session.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return session.NewRepository(gdb), mock
}

func TestRepository_FindActiveByID(t *testing.T) {
	repo, mock := setupRepo(t)
	id := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "employee_id", "upstream_token", "refresh_token_hash", "role", "expires_at"}).
		AddRow(id.String(), "7", "12", "up-token", "hash", "manager", now.Add(time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "gateway_sessions" WHERE id = $1 AND revoked_at IS NULL AND expires_at > $2`) +
		`.*` + regexp.QuoteMeta(`LIMIT $3`)).
		WithArgs(id.String(), sqlmock.AnyArg(), 1).
		WillReturnRows(rows)

	s, err := repo.FindActiveByID(context.Background(), id.String(), now)
	require.NoError(t, err)
	assert.Equal(t, "7", s.UserID)
	assert.Equal(t, "manager", s.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindActiveByID_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "gateway_sessions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindActiveByID(context.Background(), uuid.NewString(), time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_SaveSnapshot(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "gateway_sessions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveSnapshot(context.Background(), uuid.NewString(), permission.Snapshot{
		Permissions: []string{"leave:approve"},
		Role:        "manager",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RotateRefresh_Revoked(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "gateway_sessions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RotateRefresh(context.Background(), uuid.NewString(), "hash", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_UpsertFilter(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "ui_filters"`) + `.*` + regexp.QuoteMeta(`ON CONFLICT ("user_id","screen") DO UPDATE SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertFilter(context.Background(), &session.UIFilter{
		ID:     uuid.New(),
		UserID: "7",
		Screen: "leaves",
		Filter: []byte(`{"status":"pending"}`),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
