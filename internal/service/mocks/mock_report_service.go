package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clinicapi/internal/model"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GenerateVisitReport(ctx context.Context, visitID string) (*model.ReportFile, error) {
	args := m.Called(ctx, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportFile), args.Error(1)
}

func (m *MockReportService) GeneratePortfolioReport(ctx context.Context, portfolioID string) (*model.ReportFile, error) {
	args := m.Called(ctx, portfolioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportFile), args.Error(1)
}
