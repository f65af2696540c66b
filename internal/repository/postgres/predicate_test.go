package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicapi/internal/model"
)

func strPtr(s string) *string    { return &s }
func intPtr(i int) *int          { return &i }
func timePtr(t time.Time) *time.Time { return &t }

var testNow = time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)

func TestBuildPredicates_EmptyFilter(t *testing.T) {
	preds := buildPredicates(model.SearchFilter{}, testNow)

	// Soft-delete is the only predicate of an empty filter; an empty filter
	// is valid, never an error.
	require.Len(t, preds, 1)

	b := &binder{}
	assert.Equal(t, "p.deleted_at IS NULL", preds[0].where(b))
	assert.Empty(t, b.args)
}

func TestBuildPredicates_AgeBounds(t *testing.T) {
	preds := buildPredicates(model.SearchFilter{AgeMin: intPtr(30), AgeMax: intPtr(40)}, testNow)
	require.Len(t, preds, 3)

	b := &binder{}
	lower := preds[1].where(b)
	upper := preds[2].where(b)

	assert.Equal(t, "p.birth_date <= $1", lower)
	assert.Equal(t, "p.birth_date > $2", upper)
	require.Len(t, b.args, 2)

	// At least 30: born on or before 1996-08-28.
	assert.Equal(t, time.Date(1996, 8, 28, 0, 0, 0, 0, time.UTC), b.args[0])
	// Not yet 41: born strictly after 1985-08-28. A patient born 1986-08-28
	// turns exactly 40 today and stays included; one born 1985-08-28 turns
	// 41 today and is excluded on that birthday.
	assert.Equal(t, time.Date(1985, 8, 28, 0, 0, 0, 0, time.UTC), b.args[1])

	upperBound := b.args[1].(time.Time)
	turning40 := time.Date(1986, 8, 28, 0, 0, 0, 0, time.UTC)
	turning41 := time.Date(1985, 8, 28, 0, 0, 0, 0, time.UTC)
	assert.True(t, turning40.After(upperBound))
	assert.False(t, turning41.After(upperBound))
}

func TestBuildPredicates_ConsentFlags(t *testing.T) {
	preds := buildPredicates(model.SearchFilter{
		HasBotulinumConsent: true,
		HasFillerConsent:    true,
		HasPhotoConsent:     true,
	}, testNow)
	require.Len(t, preds, 4)

	b := &binder{}
	var clauses []string
	for _, p := range preds[1:] {
		clauses = append(clauses, p.where(b))
	}

	// Patient-level existence only: the subqueries never reference visits.
	for _, c := range clauses {
		assert.Contains(t, c, "EXISTS (SELECT 1 FROM consents c")
		assert.Contains(t, c, "c.deleted_at IS NULL")
		assert.NotContains(t, c, "visit")
	}
	assert.Equal(t, []any{"botulinum", "filler", "photo"}, b.args)
}

func TestBuildPredicates_VisitDateBoundsAreIndependent(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	preds := buildPredicates(model.SearchFilter{VisitDateFrom: &from, VisitDateTo: &to}, testNow)
	require.Len(t, preds, 3)

	b := &binder{}
	fromClause := preds[1].where(b)
	toClause := preds[2].where(b)

	// Two separate existence predicates; they may be satisfied by two
	// different visits.
	assert.Contains(t, fromClause, "v.visit_date >= $1")
	assert.Contains(t, toClause, "v.visit_date <= $2")
	assert.Contains(t, fromClause, "v.deleted_at IS NULL")
	assert.Equal(t, []any{from, to}, b.args)
}

func TestBuildPredicates_TreatmentPredicates(t *testing.T) {
	preds := buildPredicates(model.SearchFilter{
		LotNumber:           strPtr("LOT-7"),
		ProductIDs:          []string{"p1", "p2"},
		TreatmentCategories: []string{"filler"},
		TreatedAreaIDs:      []string{"a1", "a2", "a3"},
	}, testNow)
	require.Len(t, preds, 5)

	b := &binder{}
	lot := preds[1].where(b)
	products := preds[2].where(b)
	categories := preds[3].where(b)
	areas := preds[4].where(b)

	assert.Contains(t, lot, `t.lot_number LIKE '%' || $1 || '%' ESCAPE '\'`)
	assert.Contains(t, products, "t.product_id IN ($2, $3)")
	assert.Contains(t, categories, "t.category IN ($4)")
	assert.Contains(t, areas, "ta.area_id IN ($5, $6, $7)")

	// All three are joined through non-deleted visits and treatments.
	for _, c := range []string{lot, products, categories, areas} {
		assert.Contains(t, c, "v.deleted_at IS NULL")
		assert.Contains(t, c, "t.deleted_at IS NULL")
	}
	assert.Contains(t, areas, "ta.deleted_at IS NULL")

	assert.Equal(t, []any{"LOT-7", "p1", "p2", "filler", "a1", "a2", "a3"}, b.args)
}

func TestBuildPredicates_LotFragmentWildcardsEscaped(t *testing.T) {
	preds := buildPredicates(model.SearchFilter{LotNumber: strPtr(`50%_A\B`)}, testNow)
	require.Len(t, preds, 2)

	b := &binder{}
	preds[1].where(b)

	// The fragment is matched literally; % and _ inside it are not wildcards.
	assert.Equal(t, []any{`50\%\_A\\B`}, b.args)
}

func TestBuildPredicates_EmptyLotFragmentIgnored(t *testing.T) {
	preds := buildPredicates(model.SearchFilter{LotNumber: strPtr("")}, testNow)
	assert.Len(t, preds, 1)
}

func TestCompileCaseQuery(t *testing.T) {
	preds := buildPredicates(model.SearchFilter{Sex: strPtr("f")}, testNow)
	q, args := compileCaseQuery(preds)

	assert.Contains(t, q, "FROM patients p")
	assert.Contains(t, q, "p.deleted_at IS NULL AND p.sex = $1")
	assert.Contains(t, q, "ORDER BY p.last_name ASC, p.first_name ASC")
	assert.Contains(t, q, "LIMIT 200")
	assert.Contains(t, q, "visit_count")
	assert.Contains(t, q, "treatment_count")
	assert.Equal(t, []any{"f"}, args)
}

func TestCompileCaseQuery_Idempotent(t *testing.T) {
	filter := model.SearchFilter{
		Ethnicity:  strPtr("x"),
		AgeMin:     intPtr(18),
		ProductIDs: []string{"p1"},
	}

	q1, a1 := compileCaseQuery(buildPredicates(filter, testNow))
	q2, a2 := compileCaseQuery(buildPredicates(filter, testNow))

	assert.Equal(t, q1, q2)
	assert.Equal(t, a1, a2)
}

func TestCompileCaseQuery_PlaceholdersMatchArgs(t *testing.T) {
	filter := model.SearchFilter{
		Ethnicity:           strPtr("x"),
		Sex:                 strPtr("m"),
		AgeMin:              intPtr(20),
		AgeMax:              intPtr(30),
		HasPhotoConsent:     true,
		VisitDateFrom:       timePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		LotNumber:           strPtr("A"),
		ProductIDs:          []string{"p1", "p2"},
		TreatmentCategories: []string{"c1"},
		TreatedAreaIDs:      []string{"a1"},
	}

	q, args := compileCaseQuery(buildPredicates(filter, testNow))

	// Highest placeholder equals the arg count and every index appears once.
	assert.Contains(t, q, "$11")
	assert.NotContains(t, q, "$12")
	assert.Len(t, args, 11)
	assert.Equal(t, strings.Count(q, "$"), 11)
}
