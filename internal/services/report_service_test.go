package services

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/gigcred/backend/internal/config"
	"github.com/gigcred/backend/internal/models"
	"github.com/ledongthuc/pdf"
)

func reportPageCount(t *testing.T, data []byte) int {
	t.Helper()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("parsing report pdf: %v", err)
	}
	return reader.NumPage()
}

func TestGenerateCredibilityReportPDF(t *testing.T) {
	svc := NewReportService(&config.Config{FrontendURL: "http://localhost:3000"})

	user := &models.User{
		Name:             "Jane Doe",
		Role:             "freelancer",
		Skills:           []string{"go", "docker", "sql"},
		ExperienceYears:  3,
		CredibilityScore: 50,
	}

	data, err := svc.GenerateCredibilityReportPDF(user)
	if err != nil {
		t.Fatalf("GenerateCredibilityReportPDF: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty pdf output")
	}
	if got := reportPageCount(t, data); got != 1 {
		t.Fatalf("pages = %d, want 1", got)
	}
}

func TestReportQRBreaksToNewPageWhenFull(t *testing.T) {
	svc := NewReportService(&config.Config{FrontendURL: "http://localhost:3000"})

	// enough skills to fill most of the first page
	skills := make([]string, 250)
	for i := range skills {
		skills[i] = fmt.Sprintf("skill-%03d", i)
	}

	user := &models.User{
		Name:             "Jane Doe",
		Role:             "freelancer",
		Skills:           skills,
		ExperienceYears:  10,
		CredibilityScore: 70,
	}

	data, err := svc.GenerateCredibilityReportPDF(user)
	if err != nil {
		t.Fatalf("GenerateCredibilityReportPDF: %v", err)
	}
	if got := reportPageCount(t, data); got < 2 {
		t.Fatalf("pages = %d, want the QR moved to a second page", got)
	}
}
