package org

import (
	"fmt"

	"github.com/spec-kit/org-access-service/internal/domain"
	"github.com/spec-kit/org-access-service/internal/rbac"
)

// FlatRootLabel names the implicit root of the flattened fallback view.
const FlatRootLabel = "Organization"

// BuildForest reconstructs the four-level organizational forest
// (administrator, department, manager, case worker) from an unordered flat
// roster. The roster is never mutated and the returned nodes are owned by
// the caller; nothing is cached across invocations.
//
// Viewers attach to no node. Departments are the distinct departments
// appearing among managers, in roster order. Case workers attach by
// department match: a worker lands under the manager its ManagerID names
// when that manager sits in the same department, and an unassigned worker
// lands under the department's first manager. Only a worker whose ManagerID
// points outside the department's managers sits directly under the
// department node, sibling to the managers, never dropped. Each admin gets
// its own full copy of the department subtree; the duplication is
// deliberate.
//
// A roster with no admins yields an empty forest; callers fall back to
// FlattenedView.
func BuildForest(roster []domain.StaffRecord) []domain.OrgNode {
	var admins, managers, workers []domain.StaffRecord
	for _, rec := range roster {
		switch rec.Role {
		case domain.RoleAdmin:
			admins = append(admins, rec)
		case domain.RoleManager:
			managers = append(managers, rec)
		case domain.RoleCaseWorker:
			workers = append(workers, rec)
		}
	}

	if len(admins) == 0 {
		return nil
	}

	var departments []string
	seen := make(map[string]bool)
	for _, m := range managers {
		if !seen[m.Department] {
			seen[m.Department] = true
			departments = append(departments, m.Department)
		}
	}

	forest := make([]domain.OrgNode, 0, len(admins))
	for _, admin := range admins {
		root := domain.OrgNode{
			ID:    admin.ID,
			Label: admin.Name,
			Kind:  domain.NodeKindAdmin,
		}
		for _, dept := range departments {
			root.Children = append(root.Children, buildDepartment(admin.ID, dept, managers, workers))
		}
		forest = append(forest, root)
	}
	return forest
}

func buildDepartment(adminID, dept string, managers, workers []domain.StaffRecord) domain.OrgNode {
	node := domain.OrgNode{
		ID:    fmt.Sprintf("%s:%s", adminID, dept),
		Label: dept,
		Kind:  domain.NodeKindDepartment,
	}

	managerIndex := make(map[string]int)
	firstManager := -1
	for _, m := range managers {
		if m.Department != dept {
			continue
		}
		idx := len(node.Children)
		managerIndex[m.ID] = idx
		if firstManager < 0 {
			firstManager = idx
		}
		node.Children = append(node.Children, domain.OrgNode{
			ID:    fmt.Sprintf("%s:%s", adminID, m.ID),
			Label: m.Name,
			Kind:  domain.NodeKindManager,
		})
	}

	for _, w := range workers {
		if w.Department != dept {
			continue
		}
		leaf := domain.OrgNode{
			ID:    fmt.Sprintf("%s:%s", adminID, w.ID),
			Label: w.Name,
			Kind:  domain.NodeKindCaseWorker,
		}
		if w.ManagerID == "" && firstManager >= 0 {
			// unassigned: department match places the worker under a manager
			node.Children[firstManager].Children = append(node.Children[firstManager].Children, leaf)
			continue
		}
		if idx, ok := managerIndex[w.ManagerID]; ok {
			node.Children[idx].Children = append(node.Children[idx].Children, leaf)
			continue
		}
		// reference outside this department's managers: directly under the
		// department
		node.Children = append(node.Children, leaf)
	}

	return node
}

// FlattenedView renders the fallback when no admin exists: every non-viewer
// staff member as a leaf under one implicit root, tagged with role label and
// department, no hierarchy.
func FlattenedView(roster []domain.StaffRecord) domain.OrgNode {
	root := domain.OrgNode{Label: FlatRootLabel, Kind: domain.NodeKindDepartment}
	for _, rec := range roster {
		if rec.Role == domain.RoleViewer {
			continue
		}
		root.Children = append(root.Children, domain.OrgNode{
			ID:    rec.ID,
			Label: fmt.Sprintf("%s (%s, %s)", rec.Name, rbac.RoleLabel(rec.Role), rec.Department),
			Kind:  domain.NodeKind(rec.Role),
		})
	}
	return root
}
