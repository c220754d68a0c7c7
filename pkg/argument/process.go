package argument

import (
	"context"
	"fmt"

	"github.com/frido22/ai-paper-agent/pkg/ai"
	"github.com/frido22/ai-paper-agent/pkg/logger"
	"github.com/frido22/ai-paper-agent/pkg/paper"
)

// Step names used in reports.
const (
	StepComponents = "components"
	StepRelations  = "relations"
)

// StepReport records what happened during one extraction step of one chunk.
// Err is set when the step soft-failed; the run still continues with the
// remaining chunks.
type StepReport struct {
	Chunk      int
	Step       string
	Candidates int
	Accepted   int
	Dropped    int
	Err        error
}

// Result is the outcome of extracting one document: the assembled graph plus
// a report per executed step. Callers that only care about the graph can
// ignore Reports; callers that need to surface partial failures inspect them.
type Result struct {
	Graph   *Graph
	Reports []StepReport
}

// Failed returns the reports whose step soft-failed.
func (r *Result) Failed() []StepReport {
	var failed []StepReport
	for _, report := range r.Reports {
		if report.Err != nil {
			failed = append(failed, report)
		}
	}
	return failed
}

// Extractor drives chunked argument-graph extraction over whole documents.
type Extractor struct {
	client ai.ReasoningClient
	cfg    Config
}

// NewExtractor validates the configuration and returns a ready extractor.
// Configuration errors are the only fatal errors of the whole pipeline.
func NewExtractor(client ai.ReasoningClient, cfg Config) (*Extractor, error) {
	if client == nil {
		return nil, fmt.Errorf("reasoning client must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{client: client, cfg: cfg}, nil
}

// Extract processes the document chunk by chunk, strictly in page order, and
// assembles the argument graph. Each chunk runs its component step and then
// its relation step; both see a digest of everything extracted before them,
// which is how relations can span chunk boundaries. A failed step contributes
// nothing for its chunk but never stops the run.
func (e *Extractor) Extract(ctx context.Context, doc *paper.Document) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("document must not be nil")
	}

	graph := NewGraph()
	result := &Result{Graph: graph}

	chunks := PlanChunks(doc, e.cfg)
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Info("processing chunk",
			"document", doc.Name,
			"chunk", chunk.Index+1,
			"chunks", len(chunks),
			"pages", fmt.Sprintf("%d-%d", chunk.StartPage, chunk.EndPage))

		components, compReport := extractComponents(ctx, e.client, graph, chunk, e.cfg)
		result.Reports = append(result.Reports, compReport)

		_, relReport := extractRelations(ctx, e.client, graph, chunk, components, e.cfg)
		result.Reports = append(result.Reports, relReport)
	}

	stats := graph.Stats()
	logger.Info("extraction finished",
		"document", doc.Name,
		"nodes", stats.TotalNodes,
		"edges", stats.TotalEdges,
		"isolated", stats.IsolatedNodes)

	return result, nil
}
