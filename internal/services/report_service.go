package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gigcred/backend/internal/config"
	"github.com/gigcred/backend/internal/models"
	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

type ReportService struct {
	cfg *config.Config
}

func NewReportService(cfg *config.Config) *ReportService { return &ReportService{cfg: cfg} }

// GenerateCredibilityReportPDF renders a one-page A4 summary of the user's
// trust profile with a QR code linking to the public profile.
func (s *ReportService) GenerateCredibilityReportPDF(user *models.User) ([]byte, error) {
	profileURL := fmt.Sprintf("%s/profile/%s", s.cfg.FrontendURL, user.ID)

	png, err := qrcode.Encode(profileURL, qrcode.Medium, 512)
	if err != nil {
		return nil, err
	}

	components := ComputeCredibility(user.IsBankConnected, len(user.Skills), user.ExperienceYears)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Credibility Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 6, fmt.Sprintf("Name: %s\nRole: %s\nCredibility Score: %d / 100", user.Name, user.Role, user.CredibilityScore), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Score breakdown")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 5, fmt.Sprintf(
		"Active account: %d\nFinancial trust: %d\nSkill depth: %d\nExperience: %d",
		components.Base, components.FinancialTrust, components.SkillDepth, components.Experience,
	), "", "L", false)
	pdf.Ln(4)

	if len(user.Skills) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Skills")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 5, strings.Join(user.Skills, ", "), "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 5, fmt.Sprintf("Experience: %d years\nProfile: %s", user.ExperienceYears, profileURL), "", "L", false)

	// Register image from reader
	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr", opt, bytes.NewReader(png))

	// Center QR on the page; break to a new page if it would not fit
	const qrSize = 60.0
	pageW, pageH := pdf.GetPageSize()
	_, _, _, bottomMargin := pdf.GetMargins()
	x := (pageW - qrSize) / 2
	y := pdf.GetY() + 10
	if y+qrSize > pageH-bottomMargin {
		pdf.AddPage()
		y = pdf.GetY() + 10
	}
	pdf.ImageOptions("qr", x, y, qrSize, qrSize, false, opt, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
