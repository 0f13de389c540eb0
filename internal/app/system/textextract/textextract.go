// Package textextract pulls plain text out of uploaded documents for the
// search index. Extraction is best effort; formats without a text path
// yield an empty string rather than an error.
package textextract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extract returns the indexable text of a file. PDFs are read page by
// page, plain text is returned as-is, and every other format (including
// Word documents) produces an empty string.
func Extract(data []byte, contentType string) (string, error) {
	switch normalizeContentType(contentType) {
	case "application/pdf":
		return extractPDF(data)
	case "text/plain":
		return strings.TrimSpace(string(data)), nil
	default:
		return "", nil
	}
}

// normalizeContentType strips parameters like "; charset=utf-8".
func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, the rest still indexes.
			continue
		}

		b.WriteString(text)
		b.WriteString("\n\n")
	}

	return strings.TrimSpace(b.String()), nil
}
