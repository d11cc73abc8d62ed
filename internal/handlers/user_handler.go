package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gigcred/backend/internal/pkg/resume"
	"github.com/gigcred/backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxResumeSize bounds resume uploads. Real resumes are well under this.
const maxResumeSize = int64(10 * 1024 * 1024)

type UserHandler struct {
	userService    *services.UserService
	resumeService  *services.ResumeService
	financeService *services.FinanceService
	reportService  *services.ReportService
}

func NewUserHandler(userService *services.UserService, resumeService *services.ResumeService, financeService *services.FinanceService, reportService *services.ReportService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		resumeService:  resumeService,
		financeService: financeService,
		reportService:  reportService,
	}
}

// GetProfile retrieves the current user's profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	user, err := h.userService.GetUserByID(userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                 user.ID,
		"name":               user.Name,
		"email":              user.Email,
		"phone":              user.Phone,
		"role":               user.Role,
		"location":           user.Location,
		"bio":                user.Bio,
		"is_bank_connected":  user.IsBankConnected,
		"skills":             user.Skills,
		"experience_years":   user.ExperienceYears,
		"credibility_score":  user.CredibilityScore,
		"resume_uploaded_at": user.ResumeUploadedAt,
		"created_at":         user.CreatedAt,
	})
}

// UpdateProfile updates the current user's profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	var req struct {
		Name     string `json:"name"`
		Bio      string `json:"bio"`
		Location string `json:"location"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}

	if err := h.userService.UpdateUserProfile(userID.(uuid.UUID), updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// resumeMediaType resolves the document type from the upload, falling back
// to the file extension when the part has no usable content type.
func resumeMediaType(contentType, filename string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && mt != "" && mt != "application/octet-stream" {
		return mt
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return resume.MediaTypePDF
	case ".docx":
		return resume.MediaTypeDocx
	default:
		return contentType
	}
}

// UploadResume runs the document trust pipeline on an uploaded resume
// POST /user/resume
// Multipart form: file (required)
func (h *UserHandler) UploadResume(c *gin.Context) {
	userID, _ := c.Get("userID")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxResumeSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the 10MB limit"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxResumeSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	if int64(len(data)) > maxResumeSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the 10MB limit"})
		return
	}

	mediaType := resumeMediaType(header.Header.Get("Content-Type"), header.Filename)

	analysis, err := h.resumeService.Process(c.Request.Context(), userID.(uuid.UUID), data, mediaType, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, resume.ErrUnsupportedMediaType):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Only PDF and DOCX resumes are supported"})
		case errors.Is(err, resume.ErrExtractionFailed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not extract text from the document"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Resume analysis failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Resume analyzed successfully",
		"analysis": analysis,
	})
}

// ConnectBank marks the account as financially trusted after the Stripe
// setup intent succeeds
// POST /user/bank/connect
// Body: {"setup_intent_id": "..."}
func (h *UserHandler) ConnectBank(c *gin.Context) {
	userID, _ := c.Get("userID")

	var req struct {
		SetupIntentID string `json:"setup_intent_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.financeService.ConnectBankAccount(userID.(uuid.UUID), req.SetupIntentID); err != nil {
		switch {
		case errors.Is(err, services.ErrBankNotConnected):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bank connection has not completed"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to connect bank account"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bank account connected"})
}

// GetCredibility returns the current score with its component breakdown
// GET /user/credibility
func (h *UserHandler) GetCredibility(c *gin.Context) {
	userID, _ := c.Get("userID")

	user, err := h.userService.GetUserByID(userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	components := services.ComputeCredibility(user.IsBankConnected, len(user.Skills), user.ExperienceYears)

	c.JSON(http.StatusOK, gin.H{
		"score":      components.Total,
		"components": components,
	})
}

// CredibilityReport streams a PDF summary of the user's trust profile
// GET /user/credibility-report.pdf
func (h *UserHandler) CredibilityReport(c *gin.Context) {
	userID, _ := c.Get("userID")

	user, err := h.userService.GetUserByID(userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	pdf, err := h.reportService.GenerateCredibilityReportPDF(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=credibility-report-%s.pdf", user.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
