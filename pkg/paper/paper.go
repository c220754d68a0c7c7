package paper

import "strings"

// Page is the canonical page record produced by ingestion. Page numbers are
// 1-based. Table content extracted alongside the text is kept for consumers
// that want it but is ignored by argument extraction.
type Page struct {
	PageNumber int        `json:"page_number"`
	Text       string     `json:"text"`
	Tables     [][]string `json:"tables,omitempty"`
}

// Document is an ingested paper: its ordered pages plus file-level metadata.
type Document struct {
	Name        string            `json:"name"`
	Path        string            `json:"path"`
	ContentHash string            `json:"content_hash"`
	Pages       []Page            `json:"pages"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Text returns the text of all pages joined with newlines.
func (d *Document) Text() string {
	parts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n")
}
