package mocks

import (
	"context"

	"clinicapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) FindPatient(ctx context.Context, id string) (*model.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *MockReportRepository) FindVisit(ctx context.Context, id string) (*model.Visit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Visit), args.Error(1)
}

func (m *MockReportRepository) FindPortfolio(ctx context.Context, id string) (*model.Portfolio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Portfolio), args.Error(1)
}

func (m *MockReportRepository) ListVisitPhotos(ctx context.Context, visitID string) ([]model.Photo, error) {
	args := m.Called(ctx, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Photo), args.Error(1)
}

func (m *MockReportRepository) ListVisitTreatments(ctx context.Context, visitID string) ([]model.Treatment, error) {
	args := m.Called(ctx, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Treatment), args.Error(1)
}

func (m *MockReportRepository) ListTreatmentAnnotations(ctx context.Context, treatmentID string) ([]model.Annotation, error) {
	args := m.Called(ctx, treatmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Annotation), args.Error(1)
}

func (m *MockReportRepository) ListVisitConsents(ctx context.Context, visitID string) ([]model.Consent, error) {
	args := m.Called(ctx, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Consent), args.Error(1)
}
