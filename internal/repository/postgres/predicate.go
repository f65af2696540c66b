package postgres

import (
	"fmt"
	"strings"
	"time"

	"clinicapi/internal/model"
)

// Predicate assembly for the case search. Each optional filter field maps to
// one independent predicate; predicates are combined with AND only (absence
// of a field is the only way to relax a constraint). Every predicate renders
// its own SQL fragment against the patients alias "p" and binds its
// parameters through a shared positional binder, so the compiled query never
// concatenates user input.

// binder allocates positional placeholders and collects bound arguments.
type binder struct {
	args []any
}

func (b *binder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *binder) bindAll(vs []string) string {
	ph := make([]string, len(vs))
	for i, v := range vs {
		ph[i] = b.bind(v)
	}
	return strings.Join(ph, ", ")
}

type predicate interface {
	where(b *binder) string
}

// notDeleted is always present; soft-deleted patients never match.
type notDeleted struct{}

func (notDeleted) where(*binder) string { return "p.deleted_at IS NULL" }

// equality matches a patient column exactly.
type equality struct {
	column string
	value  any
}

func (e equality) where(b *binder) string {
	return fmt.Sprintf("p.%s = %s", e.column, b.bind(e.value))
}

// temporalBound compares a patient date column against a computed bound.
// Used for the two age predicates.
type temporalBound struct {
	column string
	op     string
	value  time.Time
}

func (t temporalBound) where(b *binder) string {
	return fmt.Sprintf("p.%s %s %s", t.column, t.op, b.bind(t.value))
}

// consentExists requires at least one non-deleted consent of the given type
// for the patient, regardless of visit association.
type consentExists struct {
	consentType string
}

func (c consentExists) where(b *binder) string {
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM consents c WHERE c.patient_id = p.id AND c.deleted_at IS NULL AND c.consent_type = %s)",
		b.bind(c.consentType))
}

// visitDateExists requires at least one non-deleted visit satisfying one
// date bound. The from- and to-bounds are emitted independently and are not
// required to match the same visit.
type visitDateExists struct {
	op    string
	value time.Time
}

func (v visitDateExists) where(b *binder) string {
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM visits v WHERE v.patient_id = p.id AND v.deleted_at IS NULL AND v.visit_date %s %s)",
		v.op, b.bind(v.value))
}

// treatmentSubstring requires at least one non-deleted treatment (through a
// non-deleted visit) whose column contains the fragment. The fragment is a
// literal substring: LIKE wildcards inside it are escaped before binding.
type treatmentSubstring struct {
	column   string
	fragment string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (t treatmentSubstring) where(b *binder) string {
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM treatments t JOIN visits v ON v.id = t.visit_id"+
			" WHERE v.patient_id = p.id AND v.deleted_at IS NULL AND t.deleted_at IS NULL"+
			" AND t.%s LIKE '%%' || %s || '%%' ESCAPE '\\')",
		t.column, b.bind(likeEscaper.Replace(t.fragment)))
}

// treatmentSetExists requires at least one non-deleted treatment whose column
// matches any one value in the set. "Exists one matching row", never "all
// values present".
type treatmentSetExists struct {
	column string
	values []string
}

func (t treatmentSetExists) where(b *binder) string {
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM treatments t JOIN visits v ON v.id = t.visit_id"+
			" WHERE v.patient_id = p.id AND v.deleted_at IS NULL AND t.deleted_at IS NULL"+
			" AND t.%s IN (%s))",
		t.column, b.bindAll(t.values))
}

// treatedAreaExists requires at least one non-deleted treatment area (through
// non-deleted treatment and visit) whose area matches any one ID in the set.
type treatedAreaExists struct {
	areaIDs []string
}

func (a treatedAreaExists) where(b *binder) string {
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM treatment_areas ta"+
			" JOIN treatments t ON t.id = ta.treatment_id"+
			" JOIN visits v ON v.id = t.visit_id"+
			" WHERE v.patient_id = p.id AND v.deleted_at IS NULL AND t.deleted_at IS NULL"+
			" AND ta.deleted_at IS NULL AND ta.area_id IN (%s))",
		b.bindAll(a.areaIDs))
}

// buildPredicates translates a filter into the ordered predicate list.
// now anchors the two age bounds; callers pass the current clock so the
// translation stays deterministic under test.
func buildPredicates(f model.SearchFilter, now time.Time) []predicate {
	preds := []predicate{notDeleted{}}

	if f.Ethnicity != nil {
		preds = append(preds, equality{column: "ethnicity", value: *f.Ethnicity})
	}
	if f.Sex != nil {
		preds = append(preds, equality{column: "sex", value: *f.Sex})
	}

	// AgeMin: birthday on or before (now - ageMin years).
	// AgeMax: birthday strictly after (now - (ageMax+1) years), so a patient
	// stays included through the day before their (ageMax+1)-th birthday.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if f.AgeMin != nil {
		preds = append(preds, temporalBound{column: "birth_date", op: "<=", value: today.AddDate(-*f.AgeMin, 0, 0)})
	}
	if f.AgeMax != nil {
		preds = append(preds, temporalBound{column: "birth_date", op: ">", value: today.AddDate(-(*f.AgeMax + 1), 0, 0)})
	}

	if f.HasBotulinumConsent {
		preds = append(preds, consentExists{consentType: "botulinum"})
	}
	if f.HasFillerConsent {
		preds = append(preds, consentExists{consentType: "filler"})
	}
	if f.HasPhotoConsent {
		preds = append(preds, consentExists{consentType: "photo"})
	}

	if f.VisitDateFrom != nil {
		preds = append(preds, visitDateExists{op: ">=", value: *f.VisitDateFrom})
	}
	if f.VisitDateTo != nil {
		preds = append(preds, visitDateExists{op: "<=", value: *f.VisitDateTo})
	}

	if f.LotNumber != nil && *f.LotNumber != "" {
		preds = append(preds, treatmentSubstring{column: "lot_number", fragment: *f.LotNumber})
	}
	if len(f.ProductIDs) > 0 {
		preds = append(preds, treatmentSetExists{column: "product_id", values: f.ProductIDs})
	}
	if len(f.TreatmentCategories) > 0 {
		preds = append(preds, treatmentSetExists{column: "category", values: f.TreatmentCategories})
	}
	if len(f.TreatedAreaIDs) > 0 {
		preds = append(preds, treatedAreaExists{areaIDs: f.TreatedAreaIDs})
	}

	return preds
}
