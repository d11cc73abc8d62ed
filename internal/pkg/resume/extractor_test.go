package resume

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	docx "github.com/fumiama/go-docx"
	"github.com/jung-kurt/gofpdf"
)

// buildPDF renders the given lines into a minimal one-page PDF.
func buildPDF(t *testing.T, lines ...string) []byte {
	t.Helper()

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Arial", "", 12)
	for _, line := range lines {
		doc.MultiCell(0, 6, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("building pdf fixture: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextPDF(t *testing.T) {
	data := buildPDF(t,
		"Jane Doe - Backend Developer",
		"Skills: go, java, docker",
		"Acme Corp 2018 - Present",
	)

	text, err := ExtractText(data, MediaTypePDF)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}

	for _, want := range []string{"Jane Doe", "docker", "2018 - Present"} {
		if !strings.Contains(text, want) {
			t.Errorf("extracted text missing %q; got %q", want, text)
		}
	}
}

// buildDocx writes the given lines into a one-paragraph-per-line document.
func buildDocx(t *testing.T, lines ...string) []byte {
	t.Helper()

	doc := docx.New().WithDefaultTheme()
	for _, line := range lines {
		doc.AddParagraph().AddText(line)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("building docx fixture: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextDocx(t *testing.T) {
	data := buildDocx(t,
		"Jane Doe - Backend Developer",
		"Skills: go, java, docker",
		"Acme Corp 2018 - Present",
	)

	text, err := ExtractText(data, MediaTypeDocx)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}

	for _, want := range []string{"Jane Doe", "docker", "2018 - Present"} {
		if !strings.Contains(text, want) {
			t.Errorf("extracted text missing %q; got %q", want, text)
		}
	}
}

func TestExtractTextUnsupportedType(t *testing.T) {
	_, err := ExtractText([]byte("hello"), "text/plain")
	if !errors.Is(err, ErrUnsupportedMediaType) {
		t.Fatalf("err = %v, want ErrUnsupportedMediaType", err)
	}
}

func TestExtractTextMalformedPDF(t *testing.T) {
	_, err := ExtractText([]byte("%PDF-1.4 this is not a real pdf"), MediaTypePDF)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("err = %v, want ErrExtractionFailed", err)
	}
}

func TestExtractTextMalformedDocx(t *testing.T) {
	_, err := ExtractText([]byte("definitely not a zip archive"), MediaTypeDocx)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("err = %v, want ErrExtractionFailed", err)
	}
}

func TestExtractTextStripsMediaTypeParameters(t *testing.T) {
	data := buildPDF(t, "parameterized media type")

	text, err := ExtractText(data, "application/pdf; charset=binary")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(text, "parameterized") {
		t.Errorf("extracted text missing content; got %q", text)
	}
}
