package argument

import (
	"fmt"
	"strings"

	"github.com/frido22/ai-paper-agent/internal/util"
)

// noPriorContext is the digest passed to the first chunk's prompts.
const noPriorContext = "No previous components found."

// contextDigestLimit caps how much of each prior component's text the digest
// repeats. Full texts would blow the prompt budget on long documents.
const contextDigestLimit = 100

// ContextDigest summarizes everything extracted so far for inclusion in the
// next chunk's prompts. It lists every prior component with its id, type and
// truncated text, followed by running totals, so later chunks can link new
// components back to earlier ones without re-reading earlier pages.
func ContextDigest(g *Graph) string {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return noPriorContext
	}

	var b strings.Builder
	b.WriteString("Previously extracted components:\n")
	for _, n := range nodes {
		fmt.Fprintf(&b, "- %s [%s] (page %d): %s\n",
			n.ID, n.Type, n.Page, util.TruncateText(n.Text, contextDigestLimit))
	}
	fmt.Fprintf(&b, "Total components so far: %d\n", len(nodes))
	fmt.Fprintf(&b, "Total relations so far: %d", len(g.Edges()))
	return b.String()
}
