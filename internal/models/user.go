package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone           string    `gorm:"uniqueIndex;not null" json:"phone"`
	Password        string    `gorm:"not null" json:"-"`
	Role            string    `gorm:"not null" json:"role"` // "freelancer" or "client"
	CompanyID       string    `json:"company_id,omitempty"`
	Location        string    `json:"location,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	IsBankConnected bool      `gorm:"default:false" json:"is_bank_connected"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`

	// Resume & credibility fields, replaced wholesale on each successful
	// resume analysis.
	Skills           []string   `gorm:"serializer:json" json:"skills"`
	ExperienceYears  int        `gorm:"default:0" json:"experience_years"`
	CredibilityScore int        `gorm:"default:0" json:"credibility_score"`
	ResumeUploadedAt *time.Time `json:"resume_uploaded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time

	// Relations
	User User `gorm:"foreignKey:UserID"`
}

func (r *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
