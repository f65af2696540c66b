package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clinicapi/internal/model"
	"clinicapi/internal/service"
)

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, filter model.SearchFilter) (*service.CaseSearchResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CaseSearchResult), args.Error(1)
}
