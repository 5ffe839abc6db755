package dto

import "github.com/spec-kit/org-access-service/internal/domain"

// OrgNodeResponse mirrors one org chart node.
type OrgNodeResponse struct {
	ID       string            `json:"id,omitempty"`
	Label    string            `json:"label"`
	Kind     string            `json:"kind"`
	Children []OrgNodeResponse `json:"children,omitempty"`
}

// OrgChartResponse wraps the forest with its rendering mode.
type OrgChartResponse struct {
	Mode  string            `json:"mode"`
	Nodes []OrgNodeResponse `json:"nodes"`
}

// FromOrgNode converts a domain node recursively.
func FromOrgNode(node domain.OrgNode) OrgNodeResponse {
	out := OrgNodeResponse{ID: node.ID, Label: node.Label, Kind: string(node.Kind)}
	for _, child := range node.Children {
		out.Children = append(out.Children, FromOrgNode(child))
	}
	return out
}

// FromOrgForest converts a forest.
func FromOrgForest(forest []domain.OrgNode) []OrgNodeResponse {
	out := make([]OrgNodeResponse, 0, len(forest))
	for _, node := range forest {
		out = append(out, FromOrgNode(node))
	}
	return out
}
