package domain

// NodeKind tags an org chart node with what it represents.
type NodeKind string

const (
	NodeKindAdmin      NodeKind = NodeKind(RoleAdmin)
	NodeKindDepartment NodeKind = "department"
	NodeKindManager    NodeKind = NodeKind(RoleManager)
	NodeKindCaseWorker NodeKind = NodeKind(RoleCaseWorker)
)

// OrgNode is one node of the reconstructed organizational forest. A fresh
// tree is built on every invocation and owned solely by its caller.
type OrgNode struct {
	ID       string
	Label    string
	Kind     NodeKind
	Children []OrgNode
}
