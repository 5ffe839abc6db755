package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/org-access-service/internal/domain"
)

func TestChartFromRosterHierarchyMode(t *testing.T) {
	carol := domain.StaffRecord{ID: "w1", Name: "Carol", Role: domain.RoleCaseWorker, Department: "Housing", ManagerID: "m1"}
	chart := ChartFromRoster([]domain.StaffRecord{
		{ID: "a1", Name: "Alice", Role: domain.RoleAdmin},
		{ID: "m1", Name: "Bob", Role: domain.RoleManager, Department: "Housing"},
		carol,
	})

	require.Equal(t, ChartModeHierarchy, chart.Mode)
	require.Len(t, chart.Forest, 1)
	assert.Equal(t, "Alice", chart.Forest[0].Label)
}

func TestChartFromRosterFallsBackToFlat(t *testing.T) {
	chart := ChartFromRoster([]domain.StaffRecord{
		{ID: "m1", Name: "Bob", Role: domain.RoleManager, Department: "Health"},
	})

	require.Equal(t, ChartModeFlat, chart.Mode)
	require.Len(t, chart.Forest, 1)

	root := chart.Forest[0]
	require.Len(t, root.Children, 1)
	assert.Contains(t, root.Children[0].Label, "Bob")
	assert.Contains(t, root.Children[0].Label, "Manager")
	assert.Contains(t, root.Children[0].Label, "Health")
}

func TestChartFromRosterEmptyRoster(t *testing.T) {
	chart := ChartFromRoster(nil)
	require.Equal(t, ChartModeFlat, chart.Mode)
	require.Len(t, chart.Forest, 1)
	assert.Empty(t, chart.Forest[0].Children)
}
