package service

import (
	"context"
	"sort"

	"clinicapi/internal/model"
	"clinicapi/internal/repository"
)

// ComparisonResult carries the two visits and their aligned photo pairs.
type ComparisonResult struct {
	BeforeVisit *model.Visit           `json:"before_visit"`
	AfterVisit  *model.Visit           `json:"after_visit"`
	Pairs       []model.ComparisonPair `json:"pairs"`
}

// CompareService defines the before/after photo pairing use case.
type CompareService interface {
	// Pair loads both visits' photos and aligns them. Either visit missing
	// yields ErrNotFound.
	Pair(ctx context.Context, beforeVisitID, afterVisitID string) (*ComparisonResult, error)
}

type compareService struct {
	repo repository.ReportRepository
}

// NewCompareService constructs a new CompareService.
func NewCompareService(repo repository.ReportRepository) CompareService {
	return &compareService{repo: repo}
}

func (s *compareService) Pair(ctx context.Context, beforeVisitID, afterVisitID string) (*ComparisonResult, error) {
	if beforeVisitID == "" || afterVisitID == "" {
		return nil, ErrIDRequired
	}

	beforeVisit, err := s.repo.FindVisit(ctx, beforeVisitID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	afterVisit, err := s.repo.FindVisit(ctx, afterVisitID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	beforePhotos, err := s.repo.ListVisitPhotos(ctx, beforeVisitID)
	if err != nil {
		return nil, err
	}
	afterPhotos, err := s.repo.ListVisitPhotos(ctx, afterVisitID)
	if err != nil {
		return nil, err
	}

	return &ComparisonResult{
		BeforeVisit: beforeVisit,
		AfterVisit:  afterVisit,
		Pairs:       MatchPairs(beforePhotos, afterPhotos),
	}, nil
}

type pairKey struct {
	position string
	state    string
}

// MatchPairs aligns two photo sets under the (position, state) composite key.
// The result is the union of both sides' keys: a key present in only one
// visit still produces a pair, with the other slot nil. Photos without a
// position are never paired; a nil state keys the same as an empty one.
// When a side has several photos under one key, the first in list order
// wins. Pairs come back sorted by position, then state.
func MatchPairs(before, after []model.Photo) []model.ComparisonPair {
	pairs := make(map[pairKey]*model.ComparisonPair)

	fill := func(photos []model.Photo, pick func(*model.ComparisonPair) **model.PhotoRef) {
		for i := range photos {
			ph := &photos[i]
			if ph.Position == nil {
				continue
			}
			key := pairKey{position: *ph.Position}
			if ph.State != nil {
				key.state = *ph.State
			}

			pair, ok := pairs[key]
			if !ok {
				pair = &model.ComparisonPair{Position: key.position}
				if key.state != "" {
					state := key.state
					pair.State = &state
				}
				pairs[key] = pair
			}
			slot := pick(pair)
			if *slot == nil {
				*slot = photoRef(ph)
			}
		}
	}
	fill(before, func(p *model.ComparisonPair) **model.PhotoRef { return &p.Before })
	fill(after, func(p *model.ComparisonPair) **model.PhotoRef { return &p.After })

	keys := make([]pairKey, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].position != keys[j].position {
			return keys[i].position < keys[j].position
		}
		return keys[i].state < keys[j].state
	})

	out := make([]model.ComparisonPair, 0, len(keys))
	for _, k := range keys {
		out = append(out, *pairs[k])
	}
	return out
}

func photoRef(ph *model.Photo) *model.PhotoRef {
	return &model.PhotoRef{
		ID:            ph.ID,
		OriginalPath:  ph.OriginalPath,
		ThumbnailPath: ph.ThumbnailPath,
		State:         ph.State,
	}
}
