package chart

import (
	"github.com/ukaji3/tabviz-go/pkg/tabviz/dataset"
	"github.com/ukaji3/tabviz-go/pkg/tabviz/models"
)

// BuildTree lays out the forest described by node and parent columns.
//
// A node whose parent is null or not a known node is a root. Leaves take
// one slot each and a parent spans the slots of its children, so the
// layout is deterministic and overlap-free. Nodes that cannot be reached
// from any root take part in a cycle and fail with ErrCyclicReference.
// Rows with a null node ID are ignored.
func BuildTree(ds *dataset.Dataset, cfg Config) (*models.ChartModel, error) {
	cfg.Kind = models.KindTree
	src := ds
	ds, err := prepare(ds, cfg)
	if err != nil {
		return nil, err
	}

	parentName := cfg.ParentColumn
	if parentName == "" && len(cfg.YColumns) > 0 {
		parentName = cfg.YColumns[0]
	}
	nodeCol, err := resolve(ds, cfg.Kind, "node", firstNonEmpty(cfg.NodeColumn, cfg.XColumn))
	if err != nil {
		return nil, err
	}
	parentCol, err := resolve(ds, cfg.Kind, "parent", parentName)
	if err != nil {
		return nil, err
	}
	labelCol := -1
	if cfg.LabelColumn != "" {
		if labelCol, err = resolve(ds, cfg.Kind, "label", cfg.LabelColumn); err != nil {
			return nil, err
		}
	}

	var nodes []models.TreeNode
	index := make(map[string]int)
	for r := 0; r < ds.RowCount(); r++ {
		id := ds.Cell(r, nodeCol)
		if id.IsNull() {
			continue
		}
		node := models.TreeNode{
			ID:     id.Format(cfg.DateFormat),
			Parent: ds.Cell(r, parentCol).Format(cfg.DateFormat),
			Row:    r,
		}
		if _, dup := index[node.ID]; dup {
			return nil, &ChartError{Kind: string(cfg.Kind), Column: ds.Column(nodeCol).Name, Row: r, Msg: node.ID, Err: ErrDuplicateNode}
		}
		node.Label = node.ID
		if labelCol >= 0 {
			if l := ds.Cell(r, labelCol); !l.IsNull() {
				node.Label = l.Format(cfg.DateFormat)
			}
		}
		index[node.ID] = len(nodes)
		nodes = append(nodes, node)
	}
	if len(nodes) == 0 {
		return nil, newChartError(string(cfg.Kind), ErrEmptyDataset, ds.Column(nodeCol).Name, "no node IDs")
	}

	graph := &models.TreeGraph{}
	children := make([][]int, len(nodes))
	var roots []int
	for i := range nodes {
		p, ok := index[nodes[i].Parent]
		if nodes[i].Parent == "" || !ok {
			nodes[i].Parent = ""
			roots = append(roots, i)
			graph.Roots = append(graph.Roots, nodes[i].ID)
			continue
		}
		children[p] = append(children[p], i)
		nodes[p].Children = append(nodes[p].Children, nodes[i].ID)
	}

	order, err := preorder(nodes, roots, children)
	if err != nil {
		return nil, err
	}
	if len(order) < len(nodes) {
		seen := make([]bool, len(nodes))
		for _, i := range order {
			seen[i] = true
		}
		for i := range nodes {
			if !seen[i] {
				return nil, &ChartError{Kind: string(cfg.Kind), Column: ds.Column(parentCol).Name, Row: nodes[i].Row, Msg: nodes[i].ID, Err: ErrCyclicReference}
			}
		}
	}

	// Subtree widths, children before parents.
	for k := len(order) - 1; k >= 0; k-- {
		i := order[k]
		w := 0
		for _, c := range children[i] {
			w += nodes[c].Width
		}
		nodes[i].Width = max(1, w)
	}

	for _, r := range roots {
		nodes[r].Slot = graph.TotalWidth
		graph.TotalWidth += nodes[r].Width
	}
	for _, i := range order {
		next := nodes[i].Slot
		for _, c := range children[i] {
			nodes[c].Depth = nodes[i].Depth + 1
			nodes[c].Slot = next
			next += nodes[c].Width
		}
		graph.MaxDepth = max(graph.MaxDepth, nodes[i].Depth)
	}

	for i := range nodes {
		nodes[i].X = (float64(nodes[i].Slot) + float64(nodes[i].Width)/2) / float64(graph.TotalWidth)
		nodes[i].Y = (float64(nodes[i].Depth) + 0.5) / float64(graph.MaxDepth+1)
	}
	graph.Nodes = nodes

	return &models.ChartModel{
		Kind:      models.KindTree,
		Title:     cfg.Title,
		DatasetID: src.ID(),
		Tree:      graph,
	}, nil
}

// preorder walks the forest from roots without recursion and returns node
// indexes with every parent before its children.
func preorder(nodes []models.TreeNode, roots []int, children [][]int) ([]int, error) {
	visited := make([]bool, len(nodes))
	order := make([]int, 0, len(nodes))
	stack := make([]int, 0, len(roots))
	for k := len(roots) - 1; k >= 0; k-- {
		stack = append(stack, roots[k])
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[i] {
			return nil, &ChartError{Kind: string(models.KindTree), Row: nodes[i].Row, Msg: nodes[i].ID, Err: ErrCyclicReference}
		}
		visited[i] = true
		order = append(order, i)
		for k := len(children[i]) - 1; k >= 0; k-- {
			stack = append(stack, children[i][k])
		}
	}
	return order, nil
}
