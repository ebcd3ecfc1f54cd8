// Package pdfext extracts plain text from PDF byte streams. The rest of the
// system consumes the extracted text only and never touches PDF internals.
package pdfext

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadable indicates the byte stream could not be parsed as a PDF.
var ErrUnreadable = errors.New("unreadable pdf")

// ExtractText concatenates the plain text of every page in the document.
// Pages that fail text extraction are skipped rather than failing the whole
// document, matching the tolerant behavior expected of scanned or partially
// corrupt files. The result may be blank; callers decide whether that is an
// error.
func ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
