package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicapi/internal/model"
)

func caseColumns() []string {
	return []string{"id", "first_name", "last_name", "birth_date", "sex", "ethnicity", "email", "phone", "visit_count", "treatment_count"}
}

func newCaseRepo(t *testing.T) (*CasePostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewCasePostgres(db)
	repo.now = func() time.Time { return testNow }
	return repo, mock
}

func TestCasePostgres_Search_EmptyFilter(t *testing.T) {
	repo, mock := newCaseRepo(t)
	ctx := context.Background()

	rows := sqlmock.NewRows(caseColumns()).
		AddRow("id-1", "Ada", "Adams", time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC), "f", nil, "ada@example.com", nil, 3, 5).
		AddRow("id-2", "Ben", "Baker", nil, nil, nil, nil, nil, 0, 0)

	mock.ExpectQuery(`SELECT p.id, p.first_name, p.last_name, (.+) FROM patients p`).
		WillReturnRows(rows)

	results, err := repo.Search(ctx, model.SearchFilter{})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Adams", results[0].LastName)
	assert.Equal(t, 3, results[0].VisitCount)
	assert.Equal(t, 5, results[0].TreatmentCount)
	assert.Nil(t, results[1].BirthDate)
	assert.Nil(t, results[1].Sex)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCasePostgres_Search_NoMatchesIsEmptySlice(t *testing.T) {
	repo, mock := newCaseRepo(t)

	mock.ExpectQuery(`SELECT p.id, p.first_name, p.last_name, (.+) FROM patients p`).
		WillReturnRows(sqlmock.NewRows(caseColumns()))

	results, err := repo.Search(context.Background(), model.SearchFilter{Sex: strPtr("f")})

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCasePostgres_Search_BindsFilterArgs(t *testing.T) {
	repo, mock := newCaseRepo(t)

	mock.ExpectQuery(`SELECT p.id, p.first_name, p.last_name, (.+) FROM patients p`).
		WithArgs("f", time.Date(1996, 8, 28, 0, 0, 0, 0, time.UTC), "prod-1", "prod-2").
		WillReturnRows(sqlmock.NewRows(caseColumns()))

	_, err := repo.Search(context.Background(), model.SearchFilter{
		Sex:        strPtr("f"),
		AgeMin:     intPtr(30),
		ProductIDs: []string{"prod-1", "prod-2"},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCasePostgres_Search_QueryError(t *testing.T) {
	repo, mock := newCaseRepo(t)

	mock.ExpectQuery(`SELECT p.id, p.first_name, p.last_name, (.+) FROM patients p`).
		WillReturnError(errors.New("db down"))

	results, err := repo.Search(context.Background(), model.SearchFilter{})

	assert.Error(t, err)
	assert.Nil(t, results)
}
