package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*SessionRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewSessionRepository(mock), mock
}

func TestSessionUpsert(t *testing.T) {
	repo, mock := newMockRepo(t)
	exp := time.Date(2026, 1, 2, 18, 0, 0, 0, time.UTC)
	created := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

	s := &model.Session{TelegramID: 100, Token: "tok", UserID: 5, Role: model.RoleSecretary, CabinetID: 7, ExpiresAt: &exp}

	mock.ExpectQuery("INSERT INTO sessions").
		WithArgs(int64(100), "tok", int64(5), "SECRETARY", int64(7), &exp).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	require.NoError(t, repo.Upsert(context.Background(), s))
	assert.Equal(t, created, s.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionGetByTelegramID(t *testing.T) {
	repo, mock := newMockRepo(t)
	exp := time.Date(2026, 1, 2, 18, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT telegram_id, token").
		WithArgs(int64(100)).
		WillReturnRows(pgxmock.NewRows([]string{
			"telegram_id", "token", "user_id", "role", "cabinet_id", "expires_at", "created_at", "updated_at",
		}).AddRow(int64(100), "tok", int64(5), "MEDECIN", int64(7), &exp, now, now))

	s, err := repo.GetByTelegramID(context.Background(), 100)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, model.RoleDoctor, s.Role)
	assert.Equal(t, "tok", s.Token)
	require.NotNil(t, s.ExpiresAt)
	assert.Equal(t, exp, *s.ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionGetMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT telegram_id, token").
		WithArgs(int64(1)).
		WillReturnError(pgx.ErrNoRows)

	s, err := repo.GetByTelegramID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestSessionGetFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT telegram_id, token").
		WithArgs(int64(1)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByTelegramID(context.Background(), 1)
	assert.ErrorContains(t, err, "get session by telegram id")
}

func TestSessionDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM sessions WHERE telegram_id").
		WithArgs(int64(100)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), 100))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionDeleteExpired(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
