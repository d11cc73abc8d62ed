package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PhoneVerification holds the single live verification code for a phone
// number. Attempts counts consecutive failures since the last issuance;
// BlockedUntil locks the record after too many failures and is never
// cleared early; ConsumedAt marks a successfully used code.
type PhoneVerification struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key"`
	Phone        string     `gorm:"uniqueIndex;not null"`
	Code         string     `gorm:"not null"`
	Attempts     int        `gorm:"not null;default:0"`
	IssuedAt     time.Time  `gorm:"not null"`
	BlockedUntil *time.Time `gorm:"default:null"`
	ConsumedAt   *time.Time `gorm:"default:null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p *PhoneVerification) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BlockedAt reports whether the record is inside its lockout window.
func (p *PhoneVerification) BlockedAt(now time.Time) bool {
	return p.BlockedUntil != nil && p.BlockedUntil.After(now)
}

// Consumed reports whether the code was already used successfully.
func (p *PhoneVerification) Consumed() bool {
	return p.ConsumedAt != nil
}
