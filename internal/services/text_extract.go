package services

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"

	"github.com/cerebra-app/cerebra-backend/internal/types"
)

// Extracted/decoded document text is cut at this many characters before it
// goes into a prompt, to bound request size.
const extractCharLimit = 8000

// DocumentContent is the prompt-ready form of an upload: either extracted
// text, or an inline image attachment.
type DocumentContent struct {
	Text      string
	ImageMIME string
	ImageData []byte
}

func (dc DocumentContent) IsImage() bool {
	return dc.ImageData != nil
}

// ExtractDocument routes an upload by its declared content type. PDF pages
// are extracted to concatenated text, images pass through untouched, plain
// text is decoded as UTF-8. Anything else is rejected before any external
// call happens.
func ExtractDocument(mimeType string, data []byte) (DocumentContent, error) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))

	switch {
	case strings.Contains(mt, "pdf"):
		text, err := extractPDF(data)
		if err != nil {
			return DocumentContent{}, types.GenerationFailed(fmt.Errorf("pdf extraction failed: %w", err))
		}
		return DocumentContent{Text: truncate(text, extractCharLimit)}, nil

	case strings.Contains(mt, "image"):
		return DocumentContent{ImageMIME: mt, ImageData: data}, nil

	case strings.Contains(mt, "text"):
		if !utf8.Valid(data) {
			return DocumentContent{}, types.GenerationFailed(fmt.Errorf("text upload is not valid UTF-8"))
		}
		return DocumentContent{Text: truncate(string(data), extractCharLimit)}, nil

	default:
		return DocumentContent{}, types.UnsupportedInput(fmt.Errorf("Unsupported file"))
	}
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}

	var out strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		out.WriteString(text)
		out.WriteString("\n")
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("no text extracted from pdf")
	}
	return out.String(), nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
