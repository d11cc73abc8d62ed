package resume

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	docx "github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// Media types accepted for resume uploads.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedMediaType is returned for declared types other than PDF/DOCX.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrExtractionFailed is returned when the binary is malformed for its
	// declared type. Partial or garbled text is never returned silently.
	ErrExtractionFailed = errors.New("text extraction failed")
)

// ExtractText converts an uploaded document into plain text. Reading order
// is whatever the underlying parser produces; no layout reconstruction.
func ExtractText(data []byte, mediaType string) (string, error) {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}

	switch mt {
	case MediaTypePDF:
		return extractPDF(data)
	case MediaTypeDocx:
		return extractDocx(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mediaType)
	}
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrExtractionFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return buf.String(), nil
}

func extractDocx(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			sb.WriteString(it.String())
			sb.WriteByte('\n')
		case *docx.Table:
			sb.WriteString(it.String())
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}
