// Package eval scores how well a paper's conclusion is supported by the rest
// of the paper, using the same reasoning clients as the extraction pipeline.
package eval

import (
	"context"
	"fmt"

	"github.com/frido22/ai-paper-agent/internal/util"
	"github.com/frido22/ai-paper-agent/pkg/ai"
	"github.com/frido22/ai-paper-agent/pkg/logger"
)

const consistencySystemPrompt = "You are an expert reviewer for scientific articles. On a scale from 0 to 100 rate how well the CONCLUSION section is fully supported by the RESULTS section. Consider whether major claims in the conclusion are adequately backed by data and figures. Return strictly JSON with keys 'score' (int) and 'justification'."

// ConsistencyScore is the structured verdict of one consistency evaluation.
type ConsistencyScore struct {
	Score         int    `json:"score" jsonschema_description:"Support score from 0 to 100"`
	Justification string `json:"justification" jsonschema_description:"Reasoning behind the score"`
}

// ScoreConsistency rates how well the conclusion is supported by the results
// section. A malformed or failed model response scores 0 with the failure
// recorded in the justification rather than returning an error, so one bad
// evaluation never fails a batch.
func ScoreConsistency(ctx context.Context, client ai.ReasoningClient, results, conclusion string, opts ...ai.GenerateOption) ConsistencyScore {
	prompt := fmt.Sprintf("RESULTS:\n%s\n\nCONCLUSION:\n%s", results, conclusion)

	opts = append(opts,
		ai.WithSystemPrompts(consistencySystemPrompt),
		ai.WithTemperature(0.2),
	)

	var verdict ConsistencyScore
	err := client.GenerateCompletionWithFormat(ctx,
		"consistency_score",
		"Score for how well the conclusion is supported by the results",
		prompt, &verdict, opts...)
	if err != nil {
		logger.Error("consistency evaluation failed", "error", err)
		return ConsistencyScore{
			Score:         0,
			Justification: "Failed to parse model output: " + util.TruncateText(err.Error(), 200),
		}
	}

	if verdict.Score < 0 {
		verdict.Score = 0
	}
	if verdict.Score > 100 {
		verdict.Score = 100
	}
	return verdict
}
