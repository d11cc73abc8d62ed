package resume

import (
	"testing"
	"time"
)

func TestEstimateExperienceYears(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want int
	}{
		{"no signal", "Recent graduate looking for a first role", 0},
		{"explicit claim", "8+ years experience in backend development", 8},
		{"explicit claim without plus", "over 5 years of go development", 5},
		{"open range", "Senior Engineer, Acme Corp, 2018 - Present", 6},
		{"closed range", "Developer 2015-2019 at Initech", 4},
		{"current marker", "2020 - current, freelance work", 4},
		{"max wins over sum", "2018 - Present and also 8+ years experience", 8},
		{"implausible claim dropped", "founded in 99 years ago... 45 years experience, 3 years at Acme", 3},
		{"implausible range dropped", "1900 - 2024 heritage brand; 2 years as engineer", 2},
		{"reversed range dropped", "2022 - 2018 typo range", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateExperienceYears(tt.text, now); got != tt.want {
				t.Fatalf("EstimateExperienceYears(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
