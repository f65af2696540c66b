package model

import "time"

// Package model contains the clinic domain read models.
// These are pure domain structs with no database-specific dependencies or tags,
// so they can be used across layers (HTTP, service, report) without coupling
// to persistence. Soft-deleted rows are filtered out at the repository layer
// and never reach these types.

// Patient is the demographic read model used by search results and reports.
type Patient struct {
	ID        string     `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Sex       *string    `json:"sex,omitempty"`
	Ethnicity *string    `json:"ethnicity,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	City      *string    `json:"city,omitempty"`
	Province  *string    `json:"province,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Visit is one patient appointment. Notes may carry HTML markup entered in
// the charting UI; the report layer strips it before rendering.
type Visit struct {
	ID           string    `json:"id"`
	PatientID    string    `json:"patient_id"`
	VisitDate    time.Time `json:"visit_date"`
	VisitTime    *string   `json:"visit_time,omitempty"`
	Practitioner *string   `json:"practitioner,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Treatment is one product administration during a visit, with its
// per-area breakdown loaded alongside.
type Treatment struct {
	ID            string     `json:"id"`
	VisitID       string     `json:"visit_id"`
	ProductID     *string    `json:"product_id,omitempty"`
	ProductName   *string    `json:"product_name,omitempty"`
	Brand         *string    `json:"brand,omitempty"`
	TreatmentType *string    `json:"treatment_type,omitempty"`
	Category      *string    `json:"category,omitempty"`
	LotNumber     *string    `json:"lot_number,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	Areas         []TreatmentArea `json:"areas,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TreatmentArea is one anatomical area treated within a treatment,
// carrying the units applied and the cost charged for that area.
type TreatmentArea struct {
	ID          string  `json:"id"`
	TreatmentID string  `json:"treatment_id"`
	AreaID      string  `json:"area_id"`
	Name        string  `json:"name"`
	Units       float64 `json:"units"`
	Cost        float64 `json:"cost"`
}

// Photo belongs to exactly one visit. Position is the anatomical/view label
// ("front", "left oblique", ...); State is an optional expression label
// ("relaxed", "active", ...). Records without a position never take part in
// before/after pairing.
type Photo struct {
	ID            string    `json:"id"`
	VisitID       string    `json:"visit_id"`
	Position      *string   `json:"position,omitempty"`
	State         *string   `json:"state,omitempty"`
	OriginalPath  string    `json:"original_path"`
	ThumbnailPath *string   `json:"thumbnail_path,omitempty"`
	SortOrder     int       `json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
}

// Consent is a patient-level signed consent of a given type
// ("botulinum", "filler", "photo"). SignatureData, when present, is a
// base64 data URL captured from the signature pad.
type Consent struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patient_id"`
	VisitID       *string    `json:"visit_id,omitempty"`
	ConsentType   string     `json:"consent_type"`
	SignedAt      *time.Time `json:"signed_at,omitempty"`
	SignatureData *string    `json:"signature_data,omitempty"`
}

// Annotation stores injection-point markup for one treatment. Points is the
// raw JSON payload written by the charting UI; it is parsed lazily at report
// time and may be malformed for old records.
type Annotation struct {
	ID          string    `json:"id"`
	TreatmentID string    `json:"treatment_id"`
	Points      string    `json:"points"`
	CreatedAt   time.Time `json:"created_at"`
}

// Portfolio names a saved before/after comparison: two visits of one patient
// whose photos are paired for the landscape portfolio report.
type Portfolio struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	PatientID     string    `json:"patient_id"`
	BeforeVisitID string    `json:"before_visit_id"`
	AfterVisitID  string    `json:"after_visit_id"`
	CreatedAt     time.Time `json:"created_at"`
}
