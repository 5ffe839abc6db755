package service

import (
	"context"

	"github.com/spec-kit/org-access-service/internal/domain"
	"github.com/spec-kit/org-access-service/internal/org"
	"github.com/spec-kit/org-access-service/internal/repository"
)

// OrgChart is one rendering of the organization: the four-level forest when
// at least one admin exists, otherwise the flattened single-level view.
type OrgChart struct {
	Mode   string
	Forest []domain.OrgNode
}

// Chart modes.
const (
	ChartModeHierarchy = "hierarchy"
	ChartModeFlat      = "flat"
)

// OrgService loads the roster and derives org charts from it. The chart is
// rebuilt per request; the roster may change between calls.
type OrgService struct {
	staff repository.StaffRepository
}

// NewOrgService constructs the service.
func NewOrgService(staff repository.StaffRepository) *OrgService {
	return &OrgService{staff: staff}
}

// Chart builds the current org chart from the active roster.
func (s *OrgService) Chart(ctx context.Context) (*OrgChart, error) {
	status := domain.IdentityStatusActive
	roster, err := s.staff.List(ctx, repository.StaffFilter{Status: &status})
	if err != nil {
		return nil, err
	}
	return ChartFromRoster(roster), nil
}

// ChartFromRoster derives a chart from an already loaded roster.
func ChartFromRoster(roster []domain.StaffRecord) *OrgChart {
	forest := org.BuildForest(roster)
	if len(forest) == 0 {
		return &OrgChart{
			Mode:   ChartModeFlat,
			Forest: []domain.OrgNode{org.FlattenedView(roster)},
		}
	}
	return &OrgChart{Mode: ChartModeHierarchy, Forest: forest}
}
