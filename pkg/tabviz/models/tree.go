package models

// TreeNode is a laid-out node of a forest.
type TreeNode struct {
	// ID is the node identifier.
	ID string `json:"id"`
	// Label is the display text (defaults to ID).
	Label string `json:"label"`
	// Parent is the parent ID (empty for roots).
	Parent string `json:"parent,omitempty"`
	// Children are child IDs in first-appearance order.
	Children []string `json:"children,omitempty"`
	// Depth is the distance from the node's root.
	Depth int `json:"depth"`
	// Slot is the left edge of the node's subtree span, in leaf units.
	Slot int `json:"slot"`
	// Width is the subtree span in leaf units.
	Width int `json:"width"`
	// X and Y are the node position in unit space.
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// Row is the dataset row the node came from.
	Row int `json:"row"`
}

// TreeGraph holds a laid-out forest.
type TreeGraph struct {
	// Nodes are in dataset row order.
	Nodes []TreeNode `json:"nodes"`
	// Roots are root IDs in first-appearance order.
	Roots    []string `json:"roots"`
	MaxDepth int      `json:"max_depth"`
	// TotalWidth is the forest span in leaf units.
	TotalWidth int `json:"total_width"`
}

// Node returns the node with the given ID.
func (t *TreeGraph) Node(id string) (TreeNode, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return TreeNode{}, false
}
