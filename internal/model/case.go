package model

import "time"

// SearchFilter is the sparse case-search specification. Every field is
// independently optional: a nil pointer, false flag, or empty slice means
// "no constraint", never "match empty". An entirely empty filter is valid
// and matches all non-deleted patients.
type SearchFilter struct {
	Ethnicity *string `json:"ethnicity,omitempty"`
	Sex       *string `json:"sex,omitempty"`
	AgeMin    *int    `json:"age_min,omitempty"`
	AgeMax    *int    `json:"age_max,omitempty"`

	// Consent flags require that the patient has ever signed a consent of
	// that type, regardless of visit association.
	HasBotulinumConsent bool `json:"has_botulinum_consent,omitempty"`
	HasFillerConsent    bool `json:"has_filler_consent,omitempty"`
	HasPhotoConsent     bool `json:"has_photo_consent,omitempty"`

	VisitDateFrom *time.Time `json:"visit_date_from,omitempty"`
	VisitDateTo   *time.Time `json:"visit_date_to,omitempty"`

	// LotNumber is a substring fragment matched against treatment lot numbers.
	LotNumber *string `json:"lot_number,omitempty"`

	ProductIDs          []string `json:"product_ids,omitempty"`
	TreatmentCategories []string `json:"treatment_categories,omitempty"`
	TreatedAreaIDs      []string `json:"treated_area_ids,omitempty"`
}

// CaseResult is one matching patient row, enriched with aggregate counts
// over the patient's non-deleted visits and treatments.
type CaseResult struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	Sex            *string    `json:"sex,omitempty"`
	Ethnicity      *string    `json:"ethnicity,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	VisitCount     int        `json:"visit_count"`
	TreatmentCount int        `json:"treatment_count"`
}
