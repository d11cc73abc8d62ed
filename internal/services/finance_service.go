package services

import (
	"errors"
	"fmt"

	"github.com/gigcred/backend/internal/config"
	"github.com/gigcred/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/setupintent"
	"gorm.io/gorm"
)

var ErrBankNotConnected = errors.New("bank connection not completed")

// FinanceService manages the financial-trust flag on user accounts. The
// flag is the scorer's external input; everything else about payments
// lives outside this service.
type FinanceService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewFinanceService(db *gorm.DB, cfg *config.Config) *FinanceService {
	stripe.Key = cfg.StripeSecretKey
	return &FinanceService{db: db, cfg: cfg}
}

// ConnectBankAccount verifies that the user's Stripe SetupIntent succeeded
// and marks the account as financially trusted.
func (s *FinanceService) ConnectBankAccount(userID uuid.UUID, setupIntentID string) error {
	si, err := setupintent.Get(setupIntentID, nil)
	if err != nil {
		return fmt.Errorf("stripe setup intent lookup: %w", err)
	}
	if si.Status != stripe.SetupIntentStatusSucceeded {
		return ErrBankNotConnected
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// Refresh the stored score so it reflects the new financial-trust
	// signal immediately, not only after the next resume upload.
	score := ComputeCredibility(true, len(user.Skills), user.ExperienceYears).Total
	return s.db.Model(&user).
		Select("is_bank_connected", "credibility_score").
		Updates(models.User{IsBankConnected: true, CredibilityScore: score}).Error
}
