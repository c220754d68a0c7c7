package paper

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LoadPDF extracts per-page text from the PDF at path and returns the
// resulting Document. Pages whose text cannot be extracted are kept as empty
// pages so that page numbering stays aligned with the source file.
func LoadPDF(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	pages := make([]Page, 0, totalPages)

	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, Page{PageNumber: i})
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Keep the slot so later pages stay correctly numbered
			pages = append(pages, Page{PageNumber: i})
			continue
		}

		pages = append(pages, Page{
			PageNumber: i,
			Text:       strings.TrimSpace(text),
		})
	}

	hash := sha256.Sum256(raw)

	return &Document{
		Name:        filepath.Base(path),
		Path:        path,
		ContentHash: hex.EncodeToString(hash[:]),
		Pages:       pages,
	}, nil
}

// HashContent returns the sha256 hex digest of raw file content. It is the
// registry key under which processed documents are stored.
func HashContent(raw []byte) string {
	hash := sha256.Sum256(raw)
	return hex.EncodeToString(hash[:])
}
