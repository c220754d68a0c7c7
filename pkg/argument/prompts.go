package argument

import (
	"encoding/json"
	"fmt"
	"strings"
)

const componentSystemPrompt = "You are an expert academic paper analyst specializing in argumentative structure extraction. You excel at identifying comprehensive argumentative components that capture complete logical units rather than fragmented sentences. You understand the nuances of academic writing and can distinguish between different types of argumentative elements with high precision."

const relationSystemPrompt = "You are an expert in academic argument analysis and logical relationship identification. You excel at uncovering the deep logical connections between argumentative components, revealing how academic papers build coherent arguments through various types of relationships. You focus on meaningful, non-trivial connections that illuminate the paper's reasoning structure."

const componentGuidelines = `COMPONENT TYPE GUIDELINES:

CLAIMS:
- Main assertions, hypotheses, or propositions that the paper argues for
- Can include multiple related statements that together form a coherent claim
- Examples: "Our approach outperforms baseline methods", "This demonstrates that...", "We argue that..."

EVIDENCE:
- Supporting data, experimental results, citations, examples, or facts
- Can include entire paragraphs describing experiments, datasets, or findings
- Examples: "Our experiments show 15% improvement", "The dataset contains 10,000 samples"

CONCLUSIONS:
- Final statements that summarize findings or draw implications
- Examples: "This work demonstrates...", "Our results suggest...", "In conclusion..."

COUNTERCLAIMS:
- Opposing arguments, limitations, or objections that the paper addresses
- Examples: "However, some argue that...", "Critics suggest..."

BACKGROUND:
- Contextual information that sets up the problem or provides necessary foundation
- Examples: "Previous work has shown...", "The problem of...", "In recent years..."

METHOD:
- Descriptions of approaches, algorithms, procedures, or methodologies
- Examples: "Our algorithm works as follows...", "We employ a three-step process..."

RESULT:
- Specific findings, outcomes, or discoveries from experiments or analysis
- Examples: "The model achieved 94% accuracy", "We found that...", "Results show..."

LIMITATION:
- Acknowledged weaknesses, constraints, or areas where the work falls short
- Examples: "Our approach has several limitations...", "This method cannot handle..."

EXTRACTION GUIDELINES:
- Extract COMPLETE argumentative units, not just single sentences
- Include all text that belongs to the same argumentative component
- Prefer longer, more comprehensive extracts over short fragments
- Ensure each component is self-contained and meaningful on its own
- Avoid overlapping or redundant components
- Focus on the most significant and well-developed argumentative elements
- Ensure each component has clear justification for its classification
- Aim to extract at least 15 components`

const relationGuidelines = `RELATIONSHIP TYPES:

supported_by:
- Evidence, data, or examples that directly support a claim
- Experimental results that validate a hypothesis

contradicted_by:
- Evidence or arguments that challenge or contradict a claim
- Counterexamples that undermine an assertion

leads_to:
- Logical progression from one component to another
- Causal relationships where one component naturally follows from another

elaborates:
- One component provides more detail, explanation, or context for another

addresses:
- One component directly responds to or deals with issues raised in another
- Solutions that address problems or limitations

compares_to:
- One component is compared or contrasted with another

builds_on:
- One component extends or improves upon another

motivates:
- One component provides motivation or justification for another
- Problem statements that motivate solutions

demonstrates:
- One component shows or proves the validity of another
- Results that demonstrate the effectiveness of a method

RELATIONSHIP EXTRACTION GUIDELINES:

Prioritize relationships that:
- Connect components across different types (e.g., claim-evidence, problem-solution)
- Show the paper's main argumentative threads
- Link new components to existing ones for continuity

Avoid creating relationships that:
- Are too obvious or trivial
- Create circular or redundant connections
- Connect components that are only superficially related

Quality over quantity:
- Aim to extract at least 10 relationships or however many are meaningful
- Each relationship should provide clear insight into the paper's logic
- Prefer relationships that span different component types`

// componentPrompt renders the prompt for the component extraction step of one
// chunk. The case warnings matter: without them models regularly answer with
// uppercase or lowercase type variants, which validation rejects.
func componentPrompt(combinedText, contextDigest string, componentTypes []string) string {
	var b strings.Builder
	b.WriteString("Analyze the following academic text and identify comprehensive argumentative components. Extract complete argumentative units rather than just single sentences.\n\n")
	b.WriteString(contextDigest)
	b.WriteString("\n\nText to analyze:\n")
	b.WriteString(combinedText)
	b.WriteString("\n\nReturn your analysis as a JSON array with the following structure:\n")
	fmt.Fprintf(&b, `[
    {
        "text": "complete argumentative text span (can be multiple sentences or paragraphs)",
        "type": "%s",
        "page": page_number,
        "justification": "detailed explanation of why this constitutes the specified component type"
    }
]
`, strings.Join(componentTypes, "|"))
	b.WriteString("\nIMPORTANT:\n")
	fmt.Fprintf(&b, "- Only use the following types exactly as written (case-sensitive): %s.\n", strings.Join(componentTypes, ", "))
	b.WriteString("- Do NOT use all uppercase (e.g., 'EVIDENCE') or all lowercase (e.g., 'evidence').\n")
	b.WriteString("- If you are unsure, pick the closest matching type from the list above.\n")
	b.WriteString("- Responses with invalid or misspelled types will be rejected.\n\n")
	b.WriteString(componentGuidelines)
	return b.String()
}

// relationPrompt renders the prompt for the relation extraction step. It
// carries the full component roster (existing plus new) so the model can link
// across chunk boundaries.
func relationPrompt(combinedText, contextDigest string, allComponents []Component, relationTypes []string) string {
	roster, err := json.MarshalIndent(allComponents, "", "  ")
	if err != nil {
		roster = []byte("[]")
	}

	var b strings.Builder
	b.WriteString("Analyze the following academic text and identify meaningful logical relationships between the argumentative components. Focus on relationships that reveal the paper's argumentative structure and logical flow.\n\n")
	b.WriteString(contextDigest)
	b.WriteString("\n\nText:\n")
	b.WriteString(combinedText)
	b.WriteString("\n\nAll components (existing + new):\n")
	b.Write(roster)
	b.WriteString("\n\nReturn as JSON array:\n")
	b.WriteString(`[
    {
        "source": "component_id",
        "target": "component_id",
        "relation": "relationship_type",
        "explanation": "detailed explanation of how these components are logically connected"
    }
]
`)
	b.WriteString("\nIMPORTANT:\n")
	fmt.Fprintf(&b, "- Only use the following relationship types exactly as written (case-sensitive): %s.\n", strings.Join(relationTypes, ", "))
	b.WriteString("- Do NOT use all uppercase (e.g., 'SUPPORTED_BY') or variants with different casing.\n")
	b.WriteString("- If you are unsure, pick the closest matching type from the list above.\n")
	b.WriteString("- Responses with invalid or misspelled relationship types will be rejected.\n\n")
	b.WriteString(relationGuidelines)
	return b.String()
}
