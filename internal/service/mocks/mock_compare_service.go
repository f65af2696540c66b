package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clinicapi/internal/service"
)

type MockCompareService struct {
	mock.Mock
}

func (m *MockCompareService) Pair(ctx context.Context, beforeVisitID, afterVisitID string) (*service.ComparisonResult, error) {
	args := m.Called(ctx, beforeVisitID, afterVisitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ComparisonResult), args.Error(1)
}
