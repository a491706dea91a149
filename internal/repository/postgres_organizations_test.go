package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Amos-136/maditrack/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrgsMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresOrganizationsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresOrganizationsRepository(db)
}

func TestCreateOrganization_Success(t *testing.T) {
	db, mock, repo := setupOrgsMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO organizations`).
		WithArgs("Clinique Santé Plus", "clinique", "jean@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"org_id"}).AddRow("11111111-1111-1111-1111-111111111111"))

	orgID, err := repo.CreateOrganization(context.Background(), &domain.Organization{
		Name:     "Clinique Santé Plus",
		Category: "clinique",
		Email:    "jean@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", orgID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrganization_InsertError(t *testing.T) {
	db, mock, repo := setupOrgsMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO organizations`).
		WithArgs("Clinique Santé Plus", "clinique", "jean@example.com").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateOrganization(context.Background(), &domain.Organization{
		Name:     "Clinique Santé Plus",
		Category: "clinique",
		Email:    "jean@example.com",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create organization")
}

func TestCreateOrganization_MissingFields(t *testing.T) {
	db, _, repo := setupOrgsMockDB(t)
	defer db.Close()

	_, err := repo.CreateOrganization(context.Background(), nil)
	require.Error(t, err)

	_, err = repo.CreateOrganization(context.Background(), &domain.Organization{Category: "clinique"})
	require.Error(t, err)

	_, err = repo.CreateOrganization(context.Background(), &domain.Organization{Name: "Clinique"})
	require.Error(t, err)
}

func TestGetOrganization_NotFound(t *testing.T) {
	db, mock, repo := setupOrgsMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs("11111111-1111-1111-1111-111111111111").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetOrganization(context.Background(), "11111111-1111-1111-1111-111111111111")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountRecentByEmail(t *testing.T) {
	db, mock, repo := setupOrgsMockDB(t)
	defer db.Close()

	since := time.Now().Add(-24 * time.Hour)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM organizations`).
		WithArgs("jean@example.com", since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountRecentByEmail(context.Background(), "jean@example.com", since)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOrganization_Success(t *testing.T) {
	db, mock, repo := setupOrgsMockDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM organizations`).
		WithArgs("11111111-1111-1111-1111-111111111111").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteOrganization(context.Background(), "11111111-1111-1111-1111-111111111111")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOrganization_NotFound(t *testing.T) {
	db, mock, repo := setupOrgsMockDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM organizations`).
		WithArgs("11111111-1111-1111-1111-111111111111").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteOrganization(context.Background(), "11111111-1111-1111-1111-111111111111")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrphans(t *testing.T) {
	db, mock, repo := setupOrgsMockDB(t)
	defer db.Close()

	created := time.Now().Add(-2 * time.Hour)
	rows := sqlmock.NewRows([]string{"org_id", "name", "category", "email", "created_at"}).
		AddRow("org-1", "Orpheline", "clinique", "orpheline@example.com", created)

	mock.ExpectQuery(`LEFT JOIN principals`).
		WillReturnRows(rows)

	orphans, err := repo.ListOrphans(context.Background(), time.Now().Add(-time.Hour), 50)

	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, "org-1", orphans[0].OrgID)
	assert.Equal(t, "orpheline@example.com", orphans[0].Email)
}
