package repository

import (
	"context"

	"clinicapi/internal/model"
)

// ReportRepository defines the read models consumed by photo pairing and
// report generation. All list methods exclude soft-deleted rows.
type ReportRepository interface {
	// FindPatient returns a patient by ID, or sql.ErrNoRows if absent.
	FindPatient(ctx context.Context, id string) (*model.Patient, error)

	// FindVisit returns a visit by ID, or sql.ErrNoRows if absent.
	FindVisit(ctx context.Context, id string) (*model.Visit, error)

	// FindPortfolio returns a portfolio by ID, or sql.ErrNoRows if absent.
	FindPortfolio(ctx context.Context, id string) (*model.Portfolio, error)

	// ListVisitPhotos returns the visit's photos ordered by
	// (sort_order, created_at) ascending.
	ListVisitPhotos(ctx context.Context, visitID string) ([]model.Photo, error)

	// ListVisitTreatments returns the visit's treatments in creation order,
	// each with its non-deleted areas populated.
	ListVisitTreatments(ctx context.Context, visitID string) ([]model.Treatment, error)

	// ListTreatmentAnnotations returns the annotations of one treatment in
	// creation order.
	ListTreatmentAnnotations(ctx context.Context, treatmentID string) ([]model.Annotation, error)

	// ListVisitConsents returns the consents attached to one visit.
	ListVisitConsents(ctx context.Context, visitID string) ([]model.Consent, error)
}
