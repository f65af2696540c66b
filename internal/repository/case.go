package repository

import (
	"context"

	"clinicapi/internal/model"
)

// CaseRepository defines the case search data access. No business logic here;
// the postgres implementation owns predicate assembly and query compilation.
type CaseRepository interface {
	// Search returns the patients matching the filter, ordered by
	// (last_name, first_name) ascending, capped at MaxCaseResults rows.
	// An empty filter is valid and matches every non-deleted patient.
	Search(ctx context.Context, filter model.SearchFilter) ([]model.CaseResult, error)
}

// MaxCaseResults is the hard cap on search result rows. There is no further
// pagination beyond this cap.
const MaxCaseResults = 200
