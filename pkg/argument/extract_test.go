package argument

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/frido22/ai-paper-agent/pkg/ai"
	"github.com/frido22/ai-paper-agent/pkg/paper"
)

// scriptedClient replays canned completions in call order. A nil entry in
// errs means the call succeeds with the matching response.
type scriptedClient struct {
	responses []string
	errs      []error
	prompts   []string
}

func (c *scriptedClient) GenerateCompletion(_ context.Context, prompt string, _ ...ai.GenerateOption) (string, error) {
	i := len(c.prompts)
	c.prompts = append(c.prompts, prompt)
	if i >= len(c.responses) {
		return "", errors.New("no scripted response left")
	}
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	return c.responses[i], nil
}

func (c *scriptedClient) GenerateCompletionWithFormat(context.Context, string, string, string, any, ...ai.GenerateOption) error {
	return errors.New("not scripted")
}

func (c *scriptedClient) Metrics() ai.ModelMetrics {
	return ai.ModelMetrics{}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PagesPerChunk = 1
	cfg.MaxRetries = 1
	cfg.RetryBaseDelay = 0
	return cfg
}

func twoPageDoc() *paper.Document {
	return &paper.Document{
		Name: "paper.pdf",
		Pages: []paper.Page{
			{PageNumber: 1, Text: "Our approach outperforms the baseline. The model achieved high accuracy."},
			{PageNumber: 2, Text: "We conclude the method generalizes."},
		},
	}
}

func TestExtractTwoChunks(t *testing.T) {
	client := &scriptedClient{
		responses: []string{
			// Chunk 0 components: one valid claim, one evidence without a
			// page field, one type with wrong casing.
			`[
				{"text": "Our approach outperforms the baseline.", "type": "Claim", "page": 1, "justification": "asserts superiority"},
				{"text": "The model achieved high accuracy", "type": "Evidence", "justification": "empirical result"},
				{"text": "something", "type": "evidence", "justification": "bad casing"}
			]`,
			// Chunk 0 relations: one valid, one self-loop.
			`[
				{"source": "P1-C1", "target": "P1-E1", "relation": "supported_by", "explanation": "evidence backs claim"},
				{"source": "P1-C1", "target": "P1-C1", "relation": "elaborates", "explanation": "loop"}
			]`,
			// Chunk 1 components.
			`[
				{"text": "We conclude the method generalizes.", "type": "Conclusion", "page": 2, "justification": "final statement"}
			]`,
			// Chunk 1 relations: one cross-chunk link, one dangling target.
			`[
				{"source": "P2-C1", "target": "P1-C1", "relation": "builds_on", "explanation": "conclusion rests on the claim"},
				{"source": "P2-C1", "target": "P9-X9", "relation": "leads_to", "explanation": "phantom"}
			]`,
		},
	}

	extractor, err := NewExtractor(client, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	result, err := extractor.Extract(context.Background(), twoPageDoc())
	if err != nil {
		t.Fatal(err)
	}

	nodes := result.Graph.Nodes()
	wantIDs := []string{"P1-C1", "P1-E1", "P2-C1"}
	var gotIDs []string
	for _, n := range nodes {
		gotIDs = append(gotIDs, n.ID)
	}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Errorf("node IDs = %v, want %v", gotIDs, wantIDs)
	}

	// The evidence component had no page field; it must be attributed to
	// page 1 by verbatim text match.
	evidence, ok := result.Graph.NodeByID("P1-E1")
	if !ok || evidence.Page != 1 {
		t.Errorf("evidence page inference failed: %+v", evidence)
	}

	edges := result.Graph.Edges()
	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2: %v", len(edges), edges)
	}
	crossChunk := edges[1]
	if crossChunk.Source != "P2-C1" || crossChunk.Target != "P1-C1" {
		t.Errorf("cross-chunk edge = %+v", crossChunk)
	}
	if crossChunk.Page != 2 {
		t.Errorf("cross-chunk edge page = %d, want 2 (later endpoint)", crossChunk.Page)
	}

	if len(result.Reports) != 4 {
		t.Fatalf("got %d reports, want 4", len(result.Reports))
	}
	if result.Reports[0].Dropped != 1 {
		t.Errorf("chunk 0 component step dropped %d, want 1", result.Reports[0].Dropped)
	}
	if result.Reports[1].Dropped != 1 {
		t.Errorf("chunk 0 relation step dropped %d, want 1", result.Reports[1].Dropped)
	}
	if result.Reports[3].Dropped != 1 {
		t.Errorf("chunk 1 relation step dropped %d, want 1", result.Reports[3].Dropped)
	}
	if failed := result.Failed(); len(failed) != 0 {
		t.Errorf("unexpected failed steps: %v", failed)
	}
}

func TestExtractSoftFailsOnServiceError(t *testing.T) {
	client := &scriptedClient{
		responses: []string{
			"", // chunk 0 components: service error
			`[{"text": "We conclude the method generalizes.", "type": "Conclusion", "page": 2, "justification": "x"}]`,
			`[]`,
		},
		errs: []error{errors.New("upstream 500")},
	}

	extractor, err := NewExtractor(client, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	result, err := extractor.Extract(context.Background(), twoPageDoc())
	if err != nil {
		t.Fatal(err)
	}

	// Chunk 0 contributes nothing and its relation step is skipped, but
	// chunk 1 still ran.
	if len(result.Graph.Nodes()) != 1 {
		t.Errorf("got %d nodes, want 1", len(result.Graph.Nodes()))
	}
	failed := result.Failed()
	if len(failed) != 1 || failed[0].Chunk != 0 || failed[0].Step != StepComponents {
		t.Errorf("Failed() = %v, want one component failure for chunk 0", failed)
	}
}

func TestExtractSoftFailsOnUnparseableResponse(t *testing.T) {
	client := &scriptedClient{
		responses: []string{
			"I could not find any argumentative components in this text.",
			`[{"text": "We conclude the method generalizes.", "type": "Conclusion", "page": 2, "justification": "x"}]`,
			`[]`,
		},
	}

	extractor, err := NewExtractor(client, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	result, err := extractor.Extract(context.Background(), twoPageDoc())
	if err != nil {
		t.Fatal(err)
	}

	failed := result.Failed()
	if len(failed) != 1 || failed[0].Step != StepComponents {
		t.Errorf("Failed() = %v, want one parse failure", failed)
	}
	if len(result.Graph.Nodes()) != 1 {
		t.Errorf("got %d nodes, want 1", len(result.Graph.Nodes()))
	}
}

func TestRelationStepSkippedWithoutNewComponents(t *testing.T) {
	client := &scriptedClient{
		responses: []string{`[]`, `[]`},
	}

	cfg := testConfig()
	cfg.PagesPerChunk = 2

	extractor, err := NewExtractor(client, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := extractor.Extract(context.Background(), twoPageDoc()); err != nil {
		t.Fatal(err)
	}

	// Only the component call happened; the relation step was skipped.
	if len(client.prompts) != 1 {
		t.Errorf("made %d calls, want 1", len(client.prompts))
	}
}

func TestNewExtractorRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PagesPerChunk = 0
	if _, err := NewExtractor(&scriptedClient{}, cfg); err == nil {
		t.Error("expected config validation error")
	}

	if _, err := NewExtractor(nil, DefaultConfig()); err == nil {
		t.Error("expected nil client error")
	}
}

func TestMergeOverlapping(t *testing.T) {
	components := []Component{
		{Type: "Claim", Text: "the method works", Page: 1},
		{Type: "Claim", Text: "We show that the method works on all benchmarks.", Page: 1},
		{Type: "Evidence", Text: "accuracy was 94%", Page: 1},
	}

	merged := mergeOverlapping(components)
	if len(merged) != 2 {
		t.Fatalf("got %d components, want 2: %v", len(merged), merged)
	}
	// Longest containing span wins over its fragment.
	if merged[0].Text != "We show that the method works on all benchmarks." {
		t.Errorf("longest span not kept first: %+v", merged[0])
	}
}

func TestInferPage(t *testing.T) {
	chunk := Chunk{Pages: []paper.Page{
		{PageNumber: 3, Text: "Alpha beta gamma."},
		{PageNumber: 4, Text: "Delta epsilon\nzeta."},
	}}

	tests := []struct {
		name string
		text string
		want int
	}{
		{"found on later page", "Delta epsilon zeta.", 4},
		{"found on first page", "beta gamma", 3},
		{"not found falls back to first page", "omega", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferPage(tt.text, chunk); got != tt.want {
				t.Errorf("inferPage(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
