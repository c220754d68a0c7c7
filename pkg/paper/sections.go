package paper

import (
	"regexp"
	"strings"

	"github.com/frido22/ai-paper-agent/internal/util"
)

// Sections holds the parts of a paper the evaluation subsystem cares about.
type Sections struct {
	Results        string
	Conclusion     string
	FigureCaptions []string
}

// Heading lines like "7 Results" or "Conclusion and Outlook". Optional
// leading numbering, then the keyword, then anything up to the newline.
var headingRe = regexp.MustCompile(`(?im)^\s*\d*\s*(results|conclusion)[^\n]*`)

var figureCaptionRe = regexp.MustCompile(`(?is)figure\s*\d+[:.\s](.+?)(?:figure|\z)`)

// ParseSections locates the results and conclusion sections in the pages'
// concatenated text and captures figure captions anywhere in the document.
// Missing sections come back as empty strings, never an error: papers with
// unconventional headings still flow through the rest of the pipeline.
func ParseSections(pages []Page) Sections {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, p.Text)
	}
	fullText := strings.Join(parts, "\n")

	sections := splitOnHeadings(fullText)

	out := Sections{
		Results:    util.CleanText(sections["results"]),
		Conclusion: util.CleanText(sections["conclusion"]),
	}

	for _, match := range figureCaptionRe.FindAllStringSubmatch(fullText, -1) {
		caption := util.CleanText(match[1])
		if caption != "" {
			out.FigureCaptions = append(out.FigureCaptions, caption)
		}
	}

	return out
}

// splitOnHeadings maps each recognized heading keyword to the body between
// the end of its heading line and the start of the next heading. Only the
// first occurrence of each keyword wins.
func splitOnHeadings(fullText string) map[string]string {
	hits := headingRe.FindAllStringSubmatchIndex(fullText, -1)
	if len(hits) == 0 {
		return nil
	}

	bounds := make(map[string][2]int)
	for i, m := range hits {
		key := strings.ToLower(fullText[m[2]:m[3]])

		bodyStart := m[1]
		if nl := strings.Index(fullText[m[1]:], "\n"); nl != -1 {
			bodyStart = m[1] + nl + 1
		}
		bodyEnd := len(fullText)
		if i+1 < len(hits) {
			bodyEnd = hits[i+1][0]
		}
		if bodyStart > bodyEnd {
			bodyStart = bodyEnd
		}

		if _, seen := bounds[key]; !seen {
			bounds[key] = [2]int{bodyStart, bodyEnd}
		}
	}

	sections := make(map[string]string, len(bounds))
	for key, b := range bounds {
		sections[key] = fullText[b[0]:b[1]]
	}
	return sections
}
