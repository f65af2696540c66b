package mocks

import (
	"context"

	"clinicapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) Search(ctx context.Context, filter model.SearchFilter) ([]model.CaseResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CaseResult), args.Error(1)
}
