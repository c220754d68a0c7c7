package argument

import (
	"context"
	"fmt"
	"strings"

	"github.com/frido22/ai-paper-agent/internal/util"
	"github.com/frido22/ai-paper-agent/pkg/ai"
	"github.com/frido22/ai-paper-agent/pkg/logger"
)

// extractRelations runs the relation step for one chunk. The step is skipped
// entirely when the component step produced nothing new; prior chunks'
// relations already cover the existing nodes. Failures soft-fail to an empty
// result like the component step.
func extractRelations(ctx context.Context, client ai.ReasoningClient, g *Graph, chunk Chunk, newComponents []Component, cfg Config) ([]Relation, StepReport) {
	report := StepReport{Chunk: chunk.Index, Step: StepRelations}

	if len(newComponents) == 0 {
		return nil, report
	}

	// The roster the model may link between is everything extracted so
	// far. The graph already holds the new components at this point.
	roster := g.Nodes()
	prompt := relationPrompt(chunk.CombinedText(cfg), ContextDigest(g), roster, cfg.RelationTypes)

	opts := []ai.GenerateOption{ai.WithSystemPrompts(relationSystemPrompt)}
	if cfg.Model != "" {
		opts = append(opts, ai.WithModel(cfg.Model))
	}

	response, err := util.RetryBackoffWithContext(ctx, cfg.MaxRetries, cfg.RetryBaseDelay,
		func(ctx context.Context) (string, error) {
			return client.GenerateCompletion(ctx, prompt, opts...)
		})
	if err != nil {
		logger.Error("relation extraction call failed", "chunk", chunk.Index, "error", err)
		report.Err = fmt.Errorf("relation extraction for chunk %d: %w", chunk.Index, err)
		return nil, report
	}

	var candidates []relationCandidate
	if err := ai.ExtractJSONArray(response, &candidates); err != nil {
		logger.Error("relation response not parseable", "chunk", chunk.Index, "error", err)
		report.Err = fmt.Errorf("parse relation response for chunk %d: %w", chunk.Index, err)
		return nil, report
	}
	report.Candidates = len(candidates)

	var accepted []Relation
	for i, candidate := range candidates {
		if errs := validateRelationCandidate(candidate, cfg.RelationTypes); len(errs) > 0 {
			logger.Warn("dropping invalid relation", "chunk", chunk.Index, "index", i, "errors", strings.Join(errs, "; "))
			report.Dropped++
			continue
		}

		source := candidate["source"].(string)
		target := candidate["target"].(string)

		relation := Relation{
			Source:   source,
			Target:   target,
			Relation: candidate["relation"].(string),
			Page:     relationPage(g, source, target),
		}

		before := len(g.Edges())
		g.AddEdge(relation)
		if len(g.Edges()) == before {
			// Self-loop, unknown endpoint or duplicate triple.
			logger.Warn("graph rejected relation", "chunk", chunk.Index, "source", source, "target", target)
			report.Dropped++
			continue
		}
		accepted = append(accepted, relation)
	}
	report.Accepted = len(accepted)

	return accepted, report
}

// relationPage attributes a relation to the later of its endpoints' pages,
// where the connection is actually established in the text. Unknown endpoints
// contribute page 1; the edge guard will reject those relations anyway.
func relationPage(g *Graph, source, target string) int {
	page := func(id string) int {
		if node, ok := g.NodeByID(id); ok {
			return node.Page
		}
		return 1
	}
	return util.Max(page(source), page(target))
}
