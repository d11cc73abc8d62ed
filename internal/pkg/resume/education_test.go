package resume

import (
	"reflect"
	"testing"
)

func TestExtractEducation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "degree and institution",
			text: "Bachelor of Science, Example University. Master's degree in CS.",
			want: []string{"bachelor", "degree", "master", "university"},
		},
		{
			name: "abbreviated degrees",
			text: "B.Tech from a state college, later an M.Sc.",
			want: []string{"b.tech", "college", "m.sc"},
		},
		{
			name: "duplicates collapse",
			text: "university university UNIVERSITY",
			want: []string{"university"},
		},
		{
			name: "no markers",
			text: "Self-taught developer with 5 years of experience.",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEducation(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractEducation(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
