package org

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/org-access-service/internal/domain"
)

func staff(id, name string, role domain.RoleID, dept string) domain.StaffRecord {
	return domain.StaffRecord{ID: id, Name: name, Role: role, Department: dept}
}

// collectLabels flattens a forest into its label set, ignoring order.
func collectLabels(nodes []domain.OrgNode) []string {
	var labels []string
	var walk func(domain.OrgNode)
	walk = func(n domain.OrgNode) {
		labels = append(labels, n.Label)
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, node := range nodes {
		walk(node)
	}
	sort.Strings(labels)
	return labels
}

func findChild(t *testing.T, parent domain.OrgNode, label string) domain.OrgNode {
	t.Helper()
	for _, child := range parent.Children {
		if child.Label == label {
			return child
		}
	}
	t.Fatalf("node %q has no child %q", parent.Label, label)
	return domain.OrgNode{}
}

func TestBuildForestAdminDepartmentManagerWorker(t *testing.T) {
	// department match alone is enough: Carol carries no manager reference
	// and still lands under Bob
	roster := []domain.StaffRecord{
		staff("a1", "Alice", domain.RoleAdmin, ""),
		staff("m1", "Bob", domain.RoleManager, "Housing"),
		staff("w1", "Carol", domain.RoleCaseWorker, "Housing"),
	}

	forest := BuildForest(roster)
	require.Len(t, forest, 1)

	alice := forest[0]
	assert.Equal(t, "Alice", alice.Label)
	assert.Equal(t, domain.NodeKindAdmin, alice.Kind)

	housing := findChild(t, alice, "Housing")
	assert.Equal(t, domain.NodeKindDepartment, housing.Kind)

	bob := findChild(t, housing, "Bob")
	assert.Equal(t, domain.NodeKindManager, bob.Kind)

	carolNode := findChild(t, bob, "Carol")
	assert.Equal(t, domain.NodeKindCaseWorker, carolNode.Kind)
	assert.Empty(t, carolNode.Children)
}

func TestBuildForestNoAdminsIsEmpty(t *testing.T) {
	roster := []domain.StaffRecord{
		staff("m1", "Bob", domain.RoleManager, "Health"),
		staff("w1", "Carol", domain.RoleCaseWorker, "Health"),
	}
	assert.Empty(t, BuildForest(roster))
	assert.Empty(t, BuildForest(nil))
}

func TestFlattenedViewFallback(t *testing.T) {
	roster := []domain.StaffRecord{
		staff("m1", "Bob", domain.RoleManager, "Health"),
		staff("v1", "Vera", domain.RoleViewer, "Health"),
	}

	require.Empty(t, BuildForest(roster))
	flat := FlattenedView(roster)

	assert.Equal(t, FlatRootLabel, flat.Label)
	require.Len(t, flat.Children, 1, "viewers are excluded from the flattened view")
	assert.Contains(t, flat.Children[0].Label, "Bob")
	assert.Contains(t, flat.Children[0].Label, "Manager")
	assert.Contains(t, flat.Children[0].Label, "Health")
	assert.Empty(t, flat.Children[0].Children)
}

func TestBuildForestExcludesViewers(t *testing.T) {
	roster := []domain.StaffRecord{
		staff("a1", "Alice", domain.RoleAdmin, ""),
		staff("m1", "Bob", domain.RoleManager, "Housing"),
		staff("v1", "Vera", domain.RoleViewer, "Housing"),
	}

	labels := collectLabels(BuildForest(roster))
	assert.NotContains(t, labels, "Vera")
}

func TestBuildForestOrphanWorkerAttachesToDepartment(t *testing.T) {
	// Dana's manager reference points outside Housing; she still lands under
	// the department node, sibling to the managers.
	dana := staff("w2", "Dana", domain.RoleCaseWorker, "Housing")
	dana.ManagerID = "m2"
	roster := []domain.StaffRecord{
		staff("a1", "Alice", domain.RoleAdmin, ""),
		staff("m1", "Bob", domain.RoleManager, "Housing"),
		staff("m2", "Mia", domain.RoleManager, "Health"),
		dana,
	}

	forest := BuildForest(roster)
	require.Len(t, forest, 1)
	housing := findChild(t, forest[0], "Housing")

	danaNode := findChild(t, housing, "Dana")
	assert.Equal(t, domain.NodeKindCaseWorker, danaNode.Kind)

	bob := findChild(t, housing, "Bob")
	assert.Empty(t, bob.Children)
}

func TestBuildForestUnassignedWorkerAttachesToFirstManager(t *testing.T) {
	roster := []domain.StaffRecord{
		staff("a1", "Alice", domain.RoleAdmin, ""),
		staff("m1", "Bob", domain.RoleManager, "Housing"),
		staff("m2", "Mia", domain.RoleManager, "Housing"),
		staff("w1", "Carol", domain.RoleCaseWorker, "Housing"),
	}

	forest := BuildForest(roster)
	housing := findChild(t, forest[0], "Housing")

	bob := findChild(t, housing, "Bob")
	findChild(t, bob, "Carol")

	mia := findChild(t, housing, "Mia")
	assert.Empty(t, mia.Children)
}

func TestBuildForestAssignedWorkerFollowsItsManager(t *testing.T) {
	// an explicit reference beats roster order
	eva := staff("w1", "Eva", domain.RoleCaseWorker, "Housing")
	eva.ManagerID = "m2"
	roster := []domain.StaffRecord{
		staff("a1", "Alice", domain.RoleAdmin, ""),
		staff("m1", "Bob", domain.RoleManager, "Housing"),
		staff("m2", "Mia", domain.RoleManager, "Housing"),
		eva,
	}

	forest := BuildForest(roster)
	housing := findChild(t, forest[0], "Housing")

	mia := findChild(t, housing, "Mia")
	findChild(t, mia, "Eva")

	bob := findChild(t, housing, "Bob")
	assert.Empty(t, bob.Children)
}

func TestBuildForestMultipleAdminsDuplicateSubtrees(t *testing.T) {
	roster := []domain.StaffRecord{
		staff("a1", "Alice", domain.RoleAdmin, ""),
		staff("a2", "Aaron", domain.RoleAdmin, ""),
		staff("m1", "Bob", domain.RoleManager, "Housing"),
	}

	forest := BuildForest(roster)
	require.Len(t, forest, 2)

	// each admin carries its own full copy of the departments
	for _, root := range forest {
		housing := findChild(t, root, "Housing")
		findChild(t, housing, "Bob")
	}
}

func TestBuildForestIdempotentOnFixedRoster(t *testing.T) {
	worker := staff("w1", "Carol", domain.RoleCaseWorker, "Housing")
	worker.ManagerID = "m1"
	roster := []domain.StaffRecord{
		staff("a1", "Alice", domain.RoleAdmin, ""),
		staff("a2", "Aaron", domain.RoleAdmin, ""),
		staff("m1", "Bob", domain.RoleManager, "Housing"),
		staff("m2", "Mia", domain.RoleManager, "Health"),
		worker,
		staff("v1", "Vera", domain.RoleViewer, "Health"),
	}

	first := BuildForest(roster)
	second := BuildForest(roster)

	assert.Equal(t, collectLabels(first), collectLabels(second))
}

func TestBuildForestDoesNotMutateRoster(t *testing.T) {
	roster := []domain.StaffRecord{
		staff("a1", "Alice", domain.RoleAdmin, ""),
		staff("m1", "Bob", domain.RoleManager, "Housing"),
	}
	snapshot := make([]domain.StaffRecord, len(roster))
	copy(snapshot, roster)

	BuildForest(roster)

	assert.Equal(t, snapshot, roster)
}

func TestBuildForestDepartmentsComeFromManagers(t *testing.T) {
	// a worker-only department contributes no department node
	roster := []domain.StaffRecord{
		staff("a1", "Alice", domain.RoleAdmin, ""),
		staff("m1", "Bob", domain.RoleManager, "Housing"),
		staff("w1", "Carol", domain.RoleCaseWorker, "Legal"),
	}

	forest := BuildForest(roster)
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, "Housing", forest[0].Children[0].Label)
}
