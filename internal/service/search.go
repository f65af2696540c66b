package service

import (
	"context"
	"errors"

	"clinicapi/internal/model"
	"clinicapi/internal/repository"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("record not found")
)

// CaseSearchResult is the service-level DTO for a case search. Total is the
// number of returned rows; the repository caps results, so Total never
// exceeds that cap.
type CaseSearchResult struct {
	Items []model.CaseResult `json:"data"`
	Total int                `json:"total"`
}

// SearchService defines the case search use case.
type SearchService interface {
	// Search runs the filter against the patient database. An empty filter
	// is valid and returns the first page of all active patients.
	Search(ctx context.Context, filter model.SearchFilter) (*CaseSearchResult, error)
}

type searchService struct {
	repo repository.CaseRepository
}

// NewSearchService constructs a new SearchService.
func NewSearchService(repo repository.CaseRepository) SearchService {
	return &searchService{repo: repo}
}

func (s *searchService) Search(ctx context.Context, filter model.SearchFilter) (*CaseSearchResult, error) {
	items, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &CaseSearchResult{Items: items, Total: len(items)}, nil
}
