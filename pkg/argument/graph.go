package argument

import (
	"fmt"
)

// Graph is the mutable container for components and relations discovered
// during one document's extraction. Insertion order is preserved for both
// lists since later chunks summarize earlier discoveries in that order.
//
// A Graph is owned by a single extraction run and is not safe for concurrent
// mutation. There is no delete operation; a graph only ever grows until it
// is serialized.
type Graph struct {
	nodes   []Component
	edges   []Relation
	nodeIDs map[string]int // id -> index into nodes

	idCounters map[string]int // "P{page}-{initial}" -> last assigned index
}

// Output is the serializable form of a graph, the contract consumed by the
// API layer and downstream analysis.
type Output struct {
	Nodes []Component `json:"nodes"`
	Edges []Relation  `json:"edges"`
}

// Stats summarizes a graph by type, relation, and page.
type Stats struct {
	TotalNodes      int            `json:"total_nodes"`
	TotalEdges      int            `json:"total_edges"`
	IsolatedNodes   int            `json:"isolated_nodes"`
	NodesByType     map[string]int `json:"nodes_by_type"`
	EdgesByRelation map[string]int `json:"edges_by_relation"`
	NodesByPage     map[int]int    `json:"nodes_by_page"`
	EdgesByPage     map[int]int    `json:"edges_by_page"`
}

// NewGraph creates an empty argument graph.
func NewGraph() *Graph {
	return &Graph{
		nodeIDs:    make(map[string]int),
		idCounters: make(map[string]int),
	}
}

// FromOutput rebuilds a graph from its serialized form, re-applying the
// insert guards. Used when stored graphs are re-analyzed.
func FromOutput(out Output) *Graph {
	g := NewGraph()
	for _, node := range out.Nodes {
		g.AddNode(node)
	}
	for _, edge := range out.Edges {
		g.AddEdge(edge)
	}
	return g
}

// NextID reserves the next component ID for the given page and type. The
// counter is scoped to the whole document, keyed by (page, type initial), so
// IDs stay unique even when later chunks attribute components to pages that
// earlier chunks already populated.
func (g *Graph) NextID(componentType string, page int) string {
	initial := "?"
	if componentType != "" {
		initial = string(componentType[0])
	}
	key := fmt.Sprintf("P%d-%s", page, initial)

	for {
		g.idCounters[key]++
		id := fmt.Sprintf("%s%d", key, g.idCounters[key])
		if _, exists := g.nodeIDs[id]; !exists {
			return id
		}
	}
}

// AddNode inserts a component into the graph. Inserting a component whose
// ID is already present is a no-op, so replays after a failed chunk are safe.
func (g *Graph) AddNode(component Component) {
	if _, exists := g.nodeIDs[component.ID]; exists {
		return
	}
	g.nodeIDs[component.ID] = len(g.nodes)
	g.nodes = append(g.nodes, component)
}

// AddEdge inserts a relation into the graph. The insert is silently dropped
// when either endpoint is unknown, when source and target are the same
// component, or when the exact (source, target, relation) triple already
// exists. Imperfect extractions produce such edges routinely, so they are
// expected occurrences rather than errors.
func (g *Graph) AddEdge(relation Relation) {
	if relation.Source == relation.Target {
		return
	}
	if _, ok := g.nodeIDs[relation.Source]; !ok {
		return
	}
	if _, ok := g.nodeIDs[relation.Target]; !ok {
		return
	}
	for _, edge := range g.edges {
		if edge.Source == relation.Source &&
			edge.Target == relation.Target &&
			edge.Relation == relation.Relation {
			return
		}
	}
	g.edges = append(g.edges, relation)
}

// NodeByID returns the component with the given ID, if present.
func (g *Graph) NodeByID(id string) (Component, bool) {
	idx, ok := g.nodeIDs[id]
	if !ok {
		return Component{}, false
	}
	return g.nodes[idx], true
}

// Nodes returns the components in insertion order.
func (g *Graph) Nodes() []Component {
	return g.nodes
}

// Edges returns the relations in insertion order.
func (g *Graph) Edges() []Relation {
	return g.edges
}

// NodesByType returns all components of the given type in insertion order.
func (g *Graph) NodesByType(componentType string) []Component {
	var out []Component
	for _, node := range g.nodes {
		if node.Type == componentType {
			out = append(out, node)
		}
	}
	return out
}

// NodesByPage returns all components attributed to the given page.
func (g *Graph) NodesByPage(page int) []Component {
	var out []Component
	for _, node := range g.nodes {
		if node.Page == page {
			out = append(out, node)
		}
	}
	return out
}

// EdgesByRelation returns all relations of the given type.
func (g *Graph) EdgesByRelation(relationType string) []Relation {
	var out []Relation
	for _, edge := range g.edges {
		if edge.Relation == relationType {
			out = append(out, edge)
		}
	}
	return out
}

// IsolatedNodes returns components with no incident relation. Isolated
// components are legitimate extraction results and are reported, not pruned.
func (g *Graph) IsolatedNodes() []Component {
	connected := make(map[string]struct{}, len(g.nodes))
	for _, edge := range g.edges {
		connected[edge.Source] = struct{}{}
		connected[edge.Target] = struct{}{}
	}

	var out []Component
	for _, node := range g.nodes {
		if _, ok := connected[node.ID]; !ok {
			out = append(out, node)
		}
	}
	return out
}

// Stats returns count summaries over the graph.
func (g *Graph) Stats() Stats {
	stats := Stats{
		TotalNodes:      len(g.nodes),
		TotalEdges:      len(g.edges),
		IsolatedNodes:   len(g.IsolatedNodes()),
		NodesByType:     make(map[string]int),
		EdgesByRelation: make(map[string]int),
		NodesByPage:     make(map[int]int),
		EdgesByPage:     make(map[int]int),
	}

	for _, node := range g.nodes {
		stats.NodesByType[node.Type]++
		stats.NodesByPage[node.Page]++
	}
	for _, edge := range g.edges {
		stats.EdgesByRelation[edge.Relation]++
		stats.EdgesByPage[edge.Page]++
	}

	return stats
}

// Validate audits the graph independently of the per-insert guards and
// returns one message per issue found: dangling edge endpoints, duplicate
// node IDs, and self-loops. The audit never blocks serialization; its
// findings are diagnostics for the caller.
func (g *Graph) Validate() []string {
	var errs []string

	ids := make(map[string]struct{}, len(g.nodes))
	for _, node := range g.nodes {
		if _, seen := ids[node.ID]; seen {
			errs = append(errs, fmt.Sprintf("Duplicate node ID: %s", node.ID))
		}
		ids[node.ID] = struct{}{}
	}

	for _, edge := range g.edges {
		if _, ok := ids[edge.Source]; !ok {
			errs = append(errs, fmt.Sprintf("Edge source '%s' does not exist", edge.Source))
		}
		if _, ok := ids[edge.Target]; !ok {
			errs = append(errs, fmt.Sprintf("Edge target '%s' does not exist", edge.Target))
		}
		if edge.Source == edge.Target {
			errs = append(errs, fmt.Sprintf("Self-loop detected: %s -> %s", edge.Source, edge.Target))
		}
	}

	return errs
}

// Output returns the serializable nodes/edges form of the graph, preserving
// insertion order. Empty graphs serialize with empty lists rather than null.
func (g *Graph) Output() Output {
	nodes := g.nodes
	if nodes == nil {
		nodes = []Component{}
	}
	edges := g.edges
	if edges == nil {
		edges = []Relation{}
	}
	return Output{Nodes: nodes, Edges: edges}
}
