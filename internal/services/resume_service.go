package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gigcred/backend/internal/models"
	"github.com/gigcred/backend/internal/pkg/resume"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResumeAnalysis is the outcome of one document run: the trust signals
// extracted from the file plus the resulting credibility score.
type ResumeAnalysis struct {
	SkillsByCategory map[string][]string `json:"skills_by_category"`
	Skills           []string            `json:"skills"`
	Education        []string            `json:"education"`
	ExperienceYears  int                 `json:"experience_years"`
	Score            int                 `json:"score"`
	Components       ScoreComponents     `json:"components"`
	RoleMatches      map[string]int      `json:"role_matches"`
}

// ResumeService runs the document trust pipeline: extract text, match
// skills, estimate experience, score, then replace the user's resume
// profile fields wholesale.
type ResumeService struct {
	db      *gorm.DB
	scoring *ScoringService
	storage *StorageService
	matcher *resume.Matcher

	now func() time.Time
}

func NewResumeService(db *gorm.DB, scoring *ScoringService, storage *StorageService) *ResumeService {
	return &ResumeService{
		db:      db,
		scoring: scoring,
		storage: storage,
		matcher: resume.NewMatcher(resume.DefaultTaxonomy()),
		now:     time.Now,
	}
}

// Process analyzes an uploaded resume for the user and persists the
// resulting profile. The same bytes against the same stored user always
// produce the same analysis.
func (s *ResumeService) Process(ctx context.Context, userID uuid.UUID, data []byte, mediaType, originalName string) (*ResumeAnalysis, error) {
	text, err := resume.ExtractText(data, mediaType)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: document contains no text", resume.ErrExtractionFailed)
	}

	byCategory := s.matcher.Match(text)
	skills := resume.UniqueSkills(byCategory)
	years := resume.EstimateExperienceYears(text, s.now())

	components, err := s.scoring.CredibilityForUser(userID, len(skills), years)
	if err != nil {
		return nil, err
	}

	// Archive the original file. Best effort: a failed archive does not
	// invalidate the analysis.
	if s.storage != nil {
		key := s.storage.BuildObjectKey("resumes", originalName)
		if _, _, _, err := s.storage.SaveStream(ctx, key, bytes.NewReader(data)); err != nil {
			log.Printf("WARN: resume archive failed for user %s: %v", userID, err)
		}
	}

	uploadedAt := s.now()
	result := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Select("skills", "experience_years", "credibility_score", "resume_uploaded_at").
		Updates(models.User{
			Skills:           skills,
			ExperienceYears:  years,
			CredibilityScore: components.Total,
			ResumeUploadedAt: &uploadedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return &ResumeAnalysis{
		SkillsByCategory: byCategory,
		Skills:           skills,
		Education:        resume.ExtractEducation(text),
		ExperienceYears:  years,
		Score:            components.Total,
		Components:       components,
		RoleMatches:      resume.SuggestRoles(skills),
	}, nil
}
