package postgres

import (
	"context"
	"database/sql"

	"clinicapi/internal/model"
	"clinicapi/internal/repository"
)

// ReportPostgres is a PostgreSQL implementation of repository.ReportRepository.
// Every query filters on deleted_at IS NULL; soft-deleted rows never reach
// pairing or report composition.
type ReportPostgres struct {
	db *sql.DB
}

// NewReportPostgres creates a new ReportPostgres repository.
func NewReportPostgres(db *sql.DB) *ReportPostgres {
	return &ReportPostgres{db: db}
}

var _ repository.ReportRepository = (*ReportPostgres)(nil)

// FindPatient fetches a single non-deleted patient by ID.
func (r *ReportPostgres) FindPatient(ctx context.Context, id string) (*model.Patient, error) {
	const q = `
		SELECT id, first_name, last_name, birth_date, sex, ethnicity, email, phone, city, province, created_at
		FROM patients
		WHERE id = $1 AND deleted_at IS NULL
	`
	row := r.db.QueryRowContext(ctx, q, id)

	var (
		p         model.Patient
		birthDate sql.NullTime
		sex       sql.NullString
		ethnicity sql.NullString
		email     sql.NullString
		phone     sql.NullString
		city      sql.NullString
		province  sql.NullString
	)
	if err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &birthDate, &sex, &ethnicity, &email, &phone, &city, &province, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.BirthDate = nullTimePtr(birthDate)
	p.Sex = nullStringPtr(sex)
	p.Ethnicity = nullStringPtr(ethnicity)
	p.Email = nullStringPtr(email)
	p.Phone = nullStringPtr(phone)
	p.City = nullStringPtr(city)
	p.Province = nullStringPtr(province)
	return &p, nil
}

// FindVisit fetches a single non-deleted visit by ID.
func (r *ReportPostgres) FindVisit(ctx context.Context, id string) (*model.Visit, error) {
	const q = `
		SELECT id, patient_id, visit_date, visit_time, practitioner, notes, created_at
		FROM visits
		WHERE id = $1 AND deleted_at IS NULL
	`
	row := r.db.QueryRowContext(ctx, q, id)

	var (
		v            model.Visit
		visitTime    sql.NullString
		practitioner sql.NullString
		notes        sql.NullString
	)
	if err := row.Scan(&v.ID, &v.PatientID, &v.VisitDate, &visitTime, &practitioner, &notes, &v.CreatedAt); err != nil {
		return nil, err
	}
	v.VisitTime = nullStringPtr(visitTime)
	v.Practitioner = nullStringPtr(practitioner)
	v.Notes = nullStringPtr(notes)
	return &v, nil
}

// FindPortfolio fetches a single non-deleted portfolio by ID.
func (r *ReportPostgres) FindPortfolio(ctx context.Context, id string) (*model.Portfolio, error) {
	const q = `
		SELECT id, name, patient_id, before_visit_id, after_visit_id, created_at
		FROM portfolios
		WHERE id = $1 AND deleted_at IS NULL
	`
	row := r.db.QueryRowContext(ctx, q, id)

	var p model.Portfolio
	if err := row.Scan(&p.ID, &p.Name, &p.PatientID, &p.BeforeVisitID, &p.AfterVisitID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListVisitPhotos returns the visit's non-deleted photos ordered by
// (sort_order, created_at). This order is load-bearing: pairing picks the
// first photo per (position, state) key in exactly this order.
func (r *ReportPostgres) ListVisitPhotos(ctx context.Context, visitID string) ([]model.Photo, error) {
	const q = `
		SELECT id, visit_id, position, state, original_path, thumbnail_path, sort_order, created_at
		FROM photos
		WHERE visit_id = $1 AND deleted_at IS NULL
		ORDER BY sort_order ASC, created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, q, visitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]model.Photo, 0)
	for rows.Next() {
		var (
			p         model.Photo
			position  sql.NullString
			state     sql.NullString
			thumbnail sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.VisitID, &position, &state, &p.OriginalPath, &thumbnail, &p.SortOrder, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Position = nullStringPtr(position)
		p.State = nullStringPtr(state)
		p.ThumbnailPath = nullStringPtr(thumbnail)
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return photos, nil
}

// ListVisitTreatments returns the visit's non-deleted treatments in creation
// order, each with its non-deleted areas.
func (r *ReportPostgres) ListVisitTreatments(ctx context.Context, visitID string) ([]model.Treatment, error) {
	const q = `
		SELECT id, visit_id, product_id, product_name, brand, treatment_type, category, lot_number, expiry_date, created_at
		FROM treatments
		WHERE visit_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, q, visitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	treatments := make([]model.Treatment, 0)
	for rows.Next() {
		var (
			t             model.Treatment
			productID     sql.NullString
			productName   sql.NullString
			brand         sql.NullString
			treatmentType sql.NullString
			category      sql.NullString
			lotNumber     sql.NullString
			expiryDate    sql.NullTime
		)
		if err := rows.Scan(&t.ID, &t.VisitID, &productID, &productName, &brand, &treatmentType, &category, &lotNumber, &expiryDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.ProductID = nullStringPtr(productID)
		t.ProductName = nullStringPtr(productName)
		t.Brand = nullStringPtr(brand)
		t.TreatmentType = nullStringPtr(treatmentType)
		t.Category = nullStringPtr(category)
		t.LotNumber = nullStringPtr(lotNumber)
		t.ExpiryDate = nullTimePtr(expiryDate)
		treatments = append(treatments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range treatments {
		areas, err := r.listTreatmentAreas(ctx, treatments[i].ID)
		if err != nil {
			return nil, err
		}
		treatments[i].Areas = areas
	}
	return treatments, nil
}

func (r *ReportPostgres) listTreatmentAreas(ctx context.Context, treatmentID string) ([]model.TreatmentArea, error) {
	const q = `
		SELECT id, treatment_id, area_id, name, units, cost
		FROM treatment_areas
		WHERE treatment_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, q, treatmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	areas := make([]model.TreatmentArea, 0)
	for rows.Next() {
		var a model.TreatmentArea
		if err := rows.Scan(&a.ID, &a.TreatmentID, &a.AreaID, &a.Name, &a.Units, &a.Cost); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return areas, nil
}

// ListTreatmentAnnotations returns one treatment's non-deleted annotations in
// creation order. The Points payload is returned raw; parsing happens at
// render time so a corrupt record can degrade locally.
func (r *ReportPostgres) ListTreatmentAnnotations(ctx context.Context, treatmentID string) ([]model.Annotation, error) {
	const q = `
		SELECT id, treatment_id, points, created_at
		FROM annotations
		WHERE treatment_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, q, treatmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	annotations := make([]model.Annotation, 0)
	for rows.Next() {
		var a model.Annotation
		if err := rows.Scan(&a.ID, &a.TreatmentID, &a.Points, &a.CreatedAt); err != nil {
			return nil, err
		}
		annotations = append(annotations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return annotations, nil
}

// ListVisitConsents returns the non-deleted consents attached to one visit.
func (r *ReportPostgres) ListVisitConsents(ctx context.Context, visitID string) ([]model.Consent, error) {
	const q = `
		SELECT id, patient_id, visit_id, consent_type, signed_at, signature_data
		FROM consents
		WHERE visit_id = $1 AND deleted_at IS NULL
		ORDER BY consent_type ASC
	`
	rows, err := r.db.QueryContext(ctx, q, visitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	consents := make([]model.Consent, 0)
	for rows.Next() {
		var (
			c             model.Consent
			consentVisit  sql.NullString
			signedAt      sql.NullTime
			signatureData sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.PatientID, &consentVisit, &c.ConsentType, &signedAt, &signatureData); err != nil {
			return nil, err
		}
		c.VisitID = nullStringPtr(consentVisit)
		c.SignedAt = nullTimePtr(signedAt)
		c.SignatureData = nullStringPtr(signatureData)
		consents = append(consents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return consents, nil
}
