package eval

import (
	"context"
	"fmt"
	"strings"

	"github.com/frido22/ai-paper-agent/pkg/ai"
	"github.com/frido22/ai-paper-agent/pkg/logger"
)

const figureSystemPrompt = `You are an expert at analyzing claims and figures in research papers.

Your task is to:
1. Extract individual claims from the conclusion
2. Check if each claim is supported by any of the provided figure captions
3. Return a JSON array where each object has:
   - "claim": the specific claim text
   - "supported": true/false

Be strict - only mark as supported if a caption clearly provides evidence for the claim.
Return valid JSON only.`

type claimSupport struct {
	Claim     string `json:"claim"`
	Supported bool   `json:"supported"`
}

// FigureSupport checks which conclusion claims are backed by the paper's
// figure captions and returns a claim to support-flag map. An empty
// conclusion or an empty caption list yields an empty map without a model
// call, and any model or parse failure also degrades to an empty map.
func FigureSupport(ctx context.Context, client ai.ReasoningClient, conclusion string, captions []string, opts ...ai.GenerateOption) map[string]bool {
	if strings.TrimSpace(conclusion) == "" || len(captions) == 0 {
		return map[string]bool{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CONCLUSION:\n%s\n\nFIGURE CAPTIONS:\n", conclusion)
	for i, caption := range captions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, caption)
	}
	b.WriteString("\nAnalyze if the figures support claims in this conclusion.")

	opts = append(opts,
		ai.WithSystemPrompts(figureSystemPrompt),
		ai.WithTemperature(0.1),
	)

	response, err := client.GenerateCompletion(ctx, b.String(), opts...)
	if err != nil {
		logger.Error("figure support evaluation failed", "error", err)
		return map[string]bool{}
	}

	var items []claimSupport
	if err := ai.ExtractJSONArray(response, &items); err != nil {
		logger.Error("figure support response not parseable", "error", err)
		return map[string]bool{}
	}

	support := make(map[string]bool, len(items))
	for _, item := range items {
		if item.Claim == "" {
			continue
		}
		support[item.Claim] = item.Supported
	}
	return support
}
