package argument

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/frido22/ai-paper-agent/internal/util"
	"github.com/frido22/ai-paper-agent/pkg/ai"
	"github.com/frido22/ai-paper-agent/pkg/logger"
)

// extractComponents runs the component step for one chunk: prompt the
// reasoning service, parse the returned array, validate each candidate, merge
// overlapping spans and assign graph ids. Service and parse failures degrade
// to an empty result so the remaining chunks still run; the error is carried
// in the report instead of aborting the document.
func extractComponents(ctx context.Context, client ai.ReasoningClient, g *Graph, chunk Chunk, cfg Config) ([]Component, StepReport) {
	report := StepReport{Chunk: chunk.Index, Step: StepComponents}

	combined := chunk.CombinedText(cfg)
	if combined == "" {
		return nil, report
	}
	prompt := componentPrompt(combined, ContextDigest(g), cfg.ComponentTypes)

	opts := []ai.GenerateOption{ai.WithSystemPrompts(componentSystemPrompt)}
	if cfg.Model != "" {
		opts = append(opts, ai.WithModel(cfg.Model))
	}

	response, err := util.RetryBackoffWithContext(ctx, cfg.MaxRetries, cfg.RetryBaseDelay,
		func(ctx context.Context) (string, error) {
			return client.GenerateCompletion(ctx, prompt, opts...)
		})
	if err != nil {
		logger.Error("component extraction call failed", "chunk", chunk.Index, "error", err)
		report.Err = fmt.Errorf("component extraction for chunk %d: %w", chunk.Index, err)
		return nil, report
	}

	var candidates []componentCandidate
	if err := ai.ExtractJSONArray(response, &candidates); err != nil {
		logger.Error("component response not parseable", "chunk", chunk.Index, "error", err)
		report.Err = fmt.Errorf("parse component response for chunk %d: %w", chunk.Index, err)
		return nil, report
	}
	report.Candidates = len(candidates)

	var valid []Component
	for i, candidate := range candidates {
		if errs := validateComponentCandidate(candidate, cfg.ComponentTypes); len(errs) > 0 {
			logger.Warn("dropping invalid component", "chunk", chunk.Index, "index", i, "errors", strings.Join(errs, "; "))
			report.Dropped++
			continue
		}

		text := candidate["text"].(string)
		page, ok := asPositiveInt(candidate["page"])
		if !ok {
			page = inferPage(text, chunk)
		}

		valid = append(valid, Component{
			Type: candidate["type"].(string),
			Text: text,
			Page: page,
		})
	}

	merged := mergeOverlapping(valid)
	report.Dropped += len(valid) - len(merged)

	for i := range merged {
		merged[i].ID = g.NextID(merged[i].Type, merged[i].Page)
		g.AddNode(merged[i])
	}
	report.Accepted = len(merged)

	return merged, report
}

// inferPage finds the chunk page whose text contains the component text
// verbatim. Both sides are whitespace-normalized first so line breaks
// introduced by PDF extraction do not defeat the match. Falls back to the
// chunk's first page.
func inferPage(text string, chunk Chunk) int {
	needle := util.CleanText(text)
	for _, p := range chunk.Pages {
		if needle != "" && strings.Contains(util.CleanText(p.Text), needle) {
			return p.PageNumber
		}
	}
	if len(chunk.Pages) > 0 {
		return chunk.Pages[0].PageNumber
	}
	return 1
}

// mergeOverlapping drops components whose text is contained in, or contains,
// the text of an already kept component. Longest spans are considered first
// so the most comprehensive extract of each argumentative unit survives.
func mergeOverlapping(components []Component) []Component {
	if len(components) == 0 {
		return nil
	}

	byLength := make([]Component, len(components))
	copy(byLength, components)
	sort.SliceStable(byLength, func(i, j int) bool {
		return len(byLength[i].Text) > len(byLength[j].Text)
	})

	var kept []Component
	for _, c := range byLength {
		overlaps := false
		for _, k := range kept {
			if strings.Contains(k.Text, c.Text) || strings.Contains(c.Text, k.Text) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, c)
		}
	}
	return kept
}
