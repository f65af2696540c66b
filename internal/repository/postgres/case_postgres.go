package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"clinicapi/internal/model"
	"clinicapi/internal/repository"
)

// CasePostgres is a PostgreSQL implementation of repository.CaseRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CasePostgres struct {
	db *sql.DB
	// now anchors the age predicates; overridable in tests.
	now func() time.Time
}

// NewCasePostgres creates a new CasePostgres repository.
func NewCasePostgres(db *sql.DB) *CasePostgres {
	return &CasePostgres{db: db, now: time.Now}
}

var _ repository.CaseRepository = (*CasePostgres)(nil)

// compileCaseQuery folds the predicate list into one bounded, ordered query.
// The two aggregate counts are correlated subqueries over non-deleted child
// rows, so they stay consistent with the soft-delete rule regardless of which
// predicates were emitted.
func compileCaseQuery(preds []predicate) (string, []any) {
	b := &binder{}
	clauses := make([]string, 0, len(preds))
	for _, p := range preds {
		clauses = append(clauses, p.where(b))
	}

	q := fmt.Sprintf(`
		SELECT p.id, p.first_name, p.last_name, p.birth_date, p.sex, p.ethnicity, p.email, p.phone,
			(SELECT COUNT(*) FROM visits v WHERE v.patient_id = p.id AND v.deleted_at IS NULL) AS visit_count,
			(SELECT COUNT(*) FROM treatments t JOIN visits v ON v.id = t.visit_id
				WHERE v.patient_id = p.id AND v.deleted_at IS NULL AND t.deleted_at IS NULL) AS treatment_count
		FROM patients p
		WHERE %s
		ORDER BY p.last_name ASC, p.first_name ASC
		LIMIT %d
	`, strings.Join(clauses, " AND "), repository.MaxCaseResults)

	return q, b.args
}

// Search compiles the filter and returns the matching case rows.
func (r *CasePostgres) Search(ctx context.Context, filter model.SearchFilter) ([]model.CaseResult, error) {
	preds := buildPredicates(filter, r.now().UTC())
	q, args := compileCaseQuery(preds)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]model.CaseResult, 0)
	for rows.Next() {
		var (
			res       model.CaseResult
			birthDate sql.NullTime
			sex       sql.NullString
			ethnicity sql.NullString
			email     sql.NullString
			phone     sql.NullString
		)
		if err := rows.Scan(
			&res.ID,
			&res.FirstName,
			&res.LastName,
			&birthDate,
			&sex,
			&ethnicity,
			&email,
			&phone,
			&res.VisitCount,
			&res.TreatmentCount,
		); err != nil {
			return nil, err
		}
		res.BirthDate = nullTimePtr(birthDate)
		res.Sex = nullStringPtr(sex)
		res.Ethnicity = nullStringPtr(ethnicity)
		res.Email = nullStringPtr(email)
		res.Phone = nullStringPtr(phone)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}
