package gym

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepoMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func TestRepository_Get(t *testing.T) {
	repo, mock, closeDB := setupRepoMock(t)
	defer closeDB()

	rows := sqlmock.NewRows([]string{"id", "name", "address", "hourly_rate_cents"}).
		AddRow("gym-1", "Iron Works Milano", "Via Roma 1", int64(1000))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, address, hourly_rate_cents")).
		WithArgs("gym-1").
		WillReturnRows(rows)

	g, err := repo.Get(context.Background(), "gym-1")
	require.NoError(t, err)
	assert.Equal(t, "Iron Works Milano", g.Name)
	assert.Equal(t, int64(1000), g.HourlyRateCents)
}

func TestRepository_GetNotFound(t *testing.T) {
	repo, mock, closeDB := setupRepoMock(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, address, hourly_rate_cents")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_HourlyRate(t *testing.T) {
	repo, mock, closeDB := setupRepoMock(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT hourly_rate_cents")).
		WithArgs("gym-1").
		WillReturnRows(sqlmock.NewRows([]string{"hourly_rate_cents"}).AddRow(int64(1500)))

	rate, err := repo.HourlyRate(context.Background(), "gym-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), rate)
}

func TestRepository_List(t *testing.T) {
	repo, mock, closeDB := setupRepoMock(t)
	defer closeDB()

	rows := sqlmock.NewRows([]string{"id", "name", "address", "hourly_rate_cents"}).
		AddRow("gym-2", "FlexFit Torino", "Corso Francia 2", int64(1500)).
		AddRow("gym-1", "Iron Works Milano", "Via Roma 1", int64(1000))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY name ASC")).
		WillReturnRows(rows)

	gyms, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, gyms, 2)
}
