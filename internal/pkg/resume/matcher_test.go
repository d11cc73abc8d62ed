package resume

import (
	"reflect"
	"sort"
	"testing"
)

func TestMatchWordBoundaries(t *testing.T) {
	m := NewMatcher(DefaultTaxonomy())

	got := m.Match("I use Go and Java, not javascript. I searched google for it.")

	langs := got["Programming Languages"]
	want := []string{"java", "javascript", "go"}
	sort.Strings(langs)
	sort.Strings(want)
	if !reflect.DeepEqual(langs, want) {
		t.Fatalf("Programming Languages = %v, want %v", langs, want)
	}
}

func TestMatchDoesNotFindSubstrings(t *testing.T) {
	m := NewMatcher(Taxonomy{
		"Programming Languages": {"go", "java"},
	})

	tests := []struct {
		text string
		want []string
	}{
		{"I searched google all day", nil},
		{"javascript everywhere", nil},
		{"Go is great, java too", []string{"go", "java"}},
		{"Expert in Java.", []string{"java"}},
	}

	for _, tt := range tests {
		got := UniqueSkills(m.Match(tt.text))
		if len(tt.want) == 0 {
			if len(got) != 0 {
				t.Errorf("Match(%q) = %v, want none", tt.text, got)
			}
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestMatchSymbolTokens(t *testing.T) {
	m := NewMatcher(DefaultTaxonomy())

	got := UniqueSkills(m.Match("Expert in C++ and C#"))
	want := []string{"c#", "c++"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UniqueSkills = %v, want %v", got, want)
	}
}

func TestMatchDeduplicatesWithinCategory(t *testing.T) {
	m := NewMatcher(Taxonomy{"Database": {"sql"}})

	got := m.Match("sql here, SQL there, more sql")
	if !reflect.DeepEqual(got["Database"], []string{"sql"}) {
		t.Fatalf("Database = %v, want [sql]", got["Database"])
	}
}

func TestMatchOmitsEmptyCategories(t *testing.T) {
	m := NewMatcher(DefaultTaxonomy())

	got := m.Match("I enjoy long walks on the beach")
	if len(got) != 0 {
		t.Fatalf("Match = %v, want empty map", got)
	}
}

func TestUniqueSkillsDeduplicatesAcrossCategories(t *testing.T) {
	byCategory := map[string][]string{
		"A": {"git", "docker"},
		"B": {"docker", "aws"},
	}
	got := UniqueSkills(byCategory)
	want := []string{"aws", "docker", "git"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UniqueSkills = %v, want %v", got, want)
	}
}

func TestSuggestRoles(t *testing.T) {
	// 3 of 6 required, 0 of 6 good-to-have: round(0.5*0.7*100) = 35.
	scores := SuggestRoles([]string{"html", "css", "javascript"})
	if scores["Web Developer"] != 35 {
		t.Errorf("Web Developer score = %d, want 35", scores["Web Developer"])
	}
	if scores["DevOps Engineer"] != 0 {
		t.Errorf("DevOps Engineer score = %d, want 0", scores["DevOps Engineer"])
	}

	if _, ok := scores["Software Engineer"]; !ok {
		t.Error("expected a score for every role profile")
	}
}
