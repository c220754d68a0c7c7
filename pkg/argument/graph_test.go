package argument

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNextID(t *testing.T) {
	g := NewGraph()

	tests := []struct {
		name          string
		componentType string
		page          int
		want          string
	}{
		{"first claim on page 1", "Claim", 1, "P1-C1"},
		{"second claim on page 1", "Claim", 1, "P1-C2"},
		{"first evidence on page 1", "Evidence", 1, "P1-E1"},
		{"first claim on page 2", "Claim", 2, "P2-C1"},
		{"third claim on page 1", "Claim", 1, "P1-C3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := g.NextID(tt.componentType, tt.page)
			if id != tt.want {
				t.Errorf("NextID(%q, %d) = %q, want %q", tt.componentType, tt.page, id, tt.want)
			}
			g.AddNode(Component{ID: id, Type: tt.componentType, Text: "x", Page: tt.page})
		})
	}
}

func TestNextIDSkipsExisting(t *testing.T) {
	g := NewGraph()
	g.AddNode(Component{ID: "P1-C1", Type: "Claim", Text: "pre-existing", Page: 1})

	if id := g.NextID("Claim", 1); id != "P1-C2" {
		t.Errorf("NextID = %q, want P1-C2", id)
	}
}

func TestAddNodeIdempotent(t *testing.T) {
	g := NewGraph()
	g.AddNode(Component{ID: "P1-C1", Type: "Claim", Text: "original", Page: 1})
	g.AddNode(Component{ID: "P1-C1", Type: "Evidence", Text: "replacement", Page: 2})

	if len(g.Nodes()) != 1 {
		t.Fatalf("got %d nodes, want 1", len(g.Nodes()))
	}
	node, _ := g.NodeByID("P1-C1")
	if node.Text != "original" {
		t.Errorf("duplicate insert replaced node: got text %q", node.Text)
	}
}

func TestAddEdgeGuards(t *testing.T) {
	newPopulated := func() *Graph {
		g := NewGraph()
		g.AddNode(Component{ID: "P1-C1", Type: "Claim", Text: "claim", Page: 1})
		g.AddNode(Component{ID: "P1-E1", Type: "Evidence", Text: "evidence", Page: 1})
		return g
	}

	tests := []struct {
		name      string
		relations []Relation
		wantEdges int
	}{
		{
			"valid edge",
			[]Relation{{Source: "P1-C1", Target: "P1-E1", Relation: "supported_by", Page: 1}},
			1,
		},
		{
			"self loop dropped",
			[]Relation{{Source: "P1-C1", Target: "P1-C1", Relation: "elaborates", Page: 1}},
			0,
		},
		{
			"unknown source dropped",
			[]Relation{{Source: "P9-C9", Target: "P1-E1", Relation: "supported_by", Page: 1}},
			0,
		},
		{
			"unknown target dropped",
			[]Relation{{Source: "P1-C1", Target: "P9-E9", Relation: "supported_by", Page: 1}},
			0,
		},
		{
			"duplicate triple dropped",
			[]Relation{
				{Source: "P1-C1", Target: "P1-E1", Relation: "supported_by", Page: 1},
				{Source: "P1-C1", Target: "P1-E1", Relation: "supported_by", Page: 1},
			},
			1,
		},
		{
			"same endpoints different relation kept",
			[]Relation{
				{Source: "P1-C1", Target: "P1-E1", Relation: "supported_by", Page: 1},
				{Source: "P1-C1", Target: "P1-E1", Relation: "elaborates", Page: 1},
			},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newPopulated()
			for _, r := range tt.relations {
				g.AddEdge(r)
			}
			if len(g.Edges()) != tt.wantEdges {
				t.Errorf("got %d edges, want %d", len(g.Edges()), tt.wantEdges)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	g := NewGraph()
	g.nodes = append(g.nodes,
		Component{ID: "P1-C1", Type: "Claim", Text: "a", Page: 1},
		Component{ID: "P1-C1", Type: "Claim", Text: "b", Page: 1},
	)
	g.edges = append(g.edges,
		Relation{Source: "P1-C1", Target: "P9-E9", Relation: "supported_by", Page: 1},
		Relation{Source: "P1-C1", Target: "P1-C1", Relation: "elaborates", Page: 1},
	)

	want := []string{
		"Duplicate node ID: P1-C1",
		"Edge target 'P9-E9' does not exist",
		"Self-loop detected: P1-C1 -> P1-C1",
	}
	got := g.Validate()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Validate() = %v, want %v", got, want)
	}
}

func TestValidateCleanGraph(t *testing.T) {
	g := NewGraph()
	g.AddNode(Component{ID: "P1-C1", Type: "Claim", Text: "claim", Page: 1})
	g.AddNode(Component{ID: "P1-E1", Type: "Evidence", Text: "evidence", Page: 1})
	g.AddEdge(Relation{Source: "P1-C1", Target: "P1-E1", Relation: "supported_by", Page: 1})

	if errs := g.Validate(); len(errs) != 0 {
		t.Errorf("expected no validation errors, got %v", errs)
	}
}

func TestOutputEmptyGraph(t *testing.T) {
	raw, err := json.Marshal(NewGraph().Output())
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"nodes":[],"edges":[]}` {
		t.Errorf("empty graph serialized as %s", raw)
	}
}

func TestIsolatedNodes(t *testing.T) {
	g := NewGraph()
	g.AddNode(Component{ID: "P1-C1", Type: "Claim", Text: "claim", Page: 1})
	g.AddNode(Component{ID: "P1-E1", Type: "Evidence", Text: "evidence", Page: 1})
	g.AddNode(Component{ID: "P2-B1", Type: "Background", Text: "background", Page: 2})
	g.AddEdge(Relation{Source: "P1-C1", Target: "P1-E1", Relation: "supported_by", Page: 1})

	isolated := g.IsolatedNodes()
	if len(isolated) != 1 || isolated[0].ID != "P2-B1" {
		t.Errorf("IsolatedNodes() = %v, want only P2-B1", isolated)
	}
}

func TestStats(t *testing.T) {
	g := NewGraph()
	g.AddNode(Component{ID: "P1-C1", Type: "Claim", Text: "claim", Page: 1})
	g.AddNode(Component{ID: "P2-E1", Type: "Evidence", Text: "evidence", Page: 2})
	g.AddNode(Component{ID: "P2-E2", Type: "Evidence", Text: "more evidence", Page: 2})
	g.AddEdge(Relation{Source: "P1-C1", Target: "P2-E1", Relation: "supported_by", Page: 2})

	stats := g.Stats()
	if stats.TotalNodes != 3 || stats.TotalEdges != 1 || stats.IsolatedNodes != 1 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if stats.NodesByType["Evidence"] != 2 {
		t.Errorf("NodesByType[Evidence] = %d, want 2", stats.NodesByType["Evidence"])
	}
	if stats.NodesByPage[2] != 2 {
		t.Errorf("NodesByPage[2] = %d, want 2", stats.NodesByPage[2])
	}
	if stats.EdgesByRelation["supported_by"] != 1 {
		t.Errorf("EdgesByRelation[supported_by] = %d, want 1", stats.EdgesByRelation["supported_by"])
	}
}
