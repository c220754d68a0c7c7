package argument

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/frido22/ai-paper-agent/internal/util"
	"github.com/frido22/ai-paper-agent/pkg/paper"
)

// Chunk is a contiguous run of document pages processed as one unit. Index is
// zero-based position in processing order.
type Chunk struct {
	Index     int
	StartPage int
	EndPage   int
	Pages     []paper.Page
}

// PageCount returns the number of pages covered by the chunk.
func (c Chunk) PageCount() int {
	return len(c.Pages)
}

// PlanChunks splits the document's pages into ceil(N/k) contiguous chunks of
// at most cfg.PagesPerChunk pages each, in page order. Every page lands in
// exactly one chunk and a trailing short chunk keeps whatever remains. An
// empty document yields no chunks.
func PlanChunks(doc *paper.Document, cfg Config) []Chunk {
	if doc == nil || len(doc.Pages) == 0 {
		return nil
	}

	size := cfg.PagesPerChunk
	if size <= 0 {
		size = DefaultConfig().PagesPerChunk
	}

	var chunks []Chunk
	for start := 0; start < len(doc.Pages); start += size {
		end := util.Min(start+size, len(doc.Pages))
		pages := doc.Pages[start:end]
		chunks = append(chunks, Chunk{
			Index:     len(chunks),
			StartPage: pages[0].PageNumber,
			EndPage:   pages[len(pages)-1].PageNumber,
			Pages:     pages,
		})
	}
	return chunks
}

// CombinedText renders the chunk as a single prompt body with an explicit
// page marker before each page so the model can attribute components to
// pages. Pages with no usable text are skipped. When cfg.MaxChunkTokens is
// set the result is truncated to that token budget.
func (c Chunk) CombinedText(cfg Config) string {
	var b strings.Builder
	for _, p := range c.Pages {
		text := util.CleanText(p.Text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "--- PAGE %d ---\n%s\n\n", p.PageNumber, text)
	}
	combined := strings.TrimRight(b.String(), "\n")

	if cfg.MaxChunkTokens > 0 {
		combined = truncateTokens(combined, cfg)
	}
	return combined
}

// truncateTokens cuts text down to cfg.MaxChunkTokens tokens under the
// configured encoding. If the encoding cannot be loaded the text is cut by
// a conservative character estimate instead of failing the chunk.
func truncateTokens(text string, cfg Config) string {
	encoder := cfg.TokenEncoder
	if encoder == "" {
		encoder = DefaultConfig().TokenEncoder
	}

	enc, err := tiktoken.GetEncoding(encoder)
	if err != nil {
		// Roughly four characters per token for English prose.
		limit := cfg.MaxChunkTokens * 4
		if len(text) > limit {
			return text[:limit]
		}
		return text
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= cfg.MaxChunkTokens {
		return text
	}
	return enc.Decode(tokens[:cfg.MaxChunkTokens])
}
