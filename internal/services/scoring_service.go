package services

import (
	"errors"

	"github.com/gigcred/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Credibility score weights. The total is bounded to [0, 100].
const (
	scoreBase           = 20
	scoreFinancialTrust = 30
	scoreSkillDepth     = 20
	skillDepthThreshold = 5
	scorePerYear        = 10
	scoreExperienceCap  = 30
	scoreTotalCap       = 100
)

// ScoreComponents breaks a credibility score into its contributions.
// Only Total is persisted; the breakdown exists for auditing and display.
type ScoreComponents struct {
	Base           int `json:"base"`
	FinancialTrust int `json:"financial_trust"`
	SkillDepth     int `json:"skill_depth"`
	Experience     int `json:"experience"`
	Total          int `json:"total"`
}

// ComputeCredibility folds the trust signals into a bounded score:
// 20 base for an active account, 30 for a connected bank account, 20 for
// five or more recognized skills, and 10 per experience year capped at 30.
func ComputeCredibility(bankConnected bool, skillCount, experienceYears int) ScoreComponents {
	c := ScoreComponents{Base: scoreBase}

	if bankConnected {
		c.FinancialTrust = scoreFinancialTrust
	}
	if skillCount >= skillDepthThreshold {
		c.SkillDepth = scoreSkillDepth
	}
	c.Experience = experienceYears * scorePerYear
	if c.Experience > scoreExperienceCap {
		c.Experience = scoreExperienceCap
	}

	c.Total = c.Base + c.FinancialTrust + c.SkillDepth + c.Experience
	if c.Total > scoreTotalCap {
		c.Total = scoreTotalCap
	}
	return c
}

// ScoringService computes credibility scores against stored user records.
type ScoringService struct {
	db *gorm.DB
}

func NewScoringService(db *gorm.DB) *ScoringService {
	return &ScoringService{db: db}
}

// CredibilityForUser looks up the user's financial-trust flag and scores
// the given signals. A missing user aborts scoring with ErrUserNotFound;
// it never silently scores as untrusted.
func (s *ScoringService) CredibilityForUser(userID uuid.UUID, skillCount, experienceYears int) (ScoreComponents, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScoreComponents{}, ErrUserNotFound
		}
		return ScoreComponents{}, err
	}
	return ComputeCredibility(user.IsBankConnected, skillCount, experienceYears), nil
}
