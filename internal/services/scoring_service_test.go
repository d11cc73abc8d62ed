package services

import (
	"errors"
	"testing"

	"github.com/gigcred/backend/internal/models"
	"github.com/google/uuid"
)

func TestComputeCredibility(t *testing.T) {
	tests := []struct {
		name            string
		bankConnected   bool
		skillCount      int
		experienceYears int
		want            ScoreComponents
	}{
		{
			name: "minimal account",
			want: ScoreComponents{Base: 20, Total: 20},
		},
		{
			name: "experience only, below skill threshold",
			bankConnected: false, skillCount: 3, experienceYears: 1,
			want: ScoreComponents{Base: 20, Experience: 10, Total: 30},
		},
		{
			name: "everything maxed is capped at 100",
			bankConnected: true, skillCount: 7, experienceYears: 5,
			want: ScoreComponents{Base: 20, FinancialTrust: 30, SkillDepth: 20, Experience: 30, Total: 100},
		},
		{
			name: "skill threshold is inclusive",
			bankConnected: false, skillCount: 5, experienceYears: 0,
			want: ScoreComponents{Base: 20, SkillDepth: 20, Total: 40},
		},
		{
			name: "experience capped at three years of credit",
			bankConnected: false, skillCount: 0, experienceYears: 12,
			want: ScoreComponents{Base: 20, Experience: 30, Total: 50},
		},
		{
			name: "bank connection only",
			bankConnected: true, skillCount: 4, experienceYears: 0,
			want: ScoreComponents{Base: 20, FinancialTrust: 30, Total: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCredibility(tt.bankConnected, tt.skillCount, tt.experienceYears)
			if got != tt.want {
				t.Fatalf("ComputeCredibility(%v, %d, %d) = %+v, want %+v",
					tt.bankConnected, tt.skillCount, tt.experienceYears, got, tt.want)
			}
		})
	}
}

func TestCredibilityForUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db)

	user := &models.User{
		Name:            "Jane",
		Email:           "jane@example.com",
		Phone:           "+100",
		Password:        "x",
		Role:            "freelancer",
		IsBankConnected: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("creating user: %v", err)
	}

	got, err := svc.CredibilityForUser(user.ID, 6, 2)
	if err != nil {
		t.Fatalf("CredibilityForUser: %v", err)
	}
	want := ScoreComponents{Base: 20, FinancialTrust: 30, SkillDepth: 20, Experience: 20, Total: 90}
	if got != want {
		t.Fatalf("components = %+v, want %+v", got, want)
	}
}

func TestCredibilityForMissingUserAborts(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db)

	_, err := svc.CredibilityForUser(uuid.New(), 6, 2)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
