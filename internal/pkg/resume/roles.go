package resume

import "math"

// RoleProfile describes the skill expectations of a marketplace job role.
type RoleProfile struct {
	RequiredSkills []string
	GoodToHave     []string
}

// DefaultRoleProfiles returns the built-in role dictionary used for role
// match suggestions.
func DefaultRoleProfiles() map[string]RoleProfile {
	return map[string]RoleProfile{
		"Software Engineer": {
			RequiredSkills: []string{"python", "java", "javascript", "sql", "git", "algorithms", "data structures"},
			GoodToHave:     []string{"docker", "kubernetes", "aws", "ci/cd", "agile", "react", "node.js"},
		},
		"Data Scientist": {
			RequiredSkills: []string{"python", "r", "sql", "machine learning", "statistics", "data analysis"},
			GoodToHave:     []string{"tensorflow", "pytorch", "big data", "spark", "tableau", "pandas"},
		},
		"Web Developer": {
			RequiredSkills: []string{"html", "css", "javascript", "react", "node.js", "responsive design"},
			GoodToHave:     []string{"typescript", "vue", "angular", "webpack", "sass", "next.js"},
		},
		"DevOps Engineer": {
			RequiredSkills: []string{"linux", "aws", "docker", "kubernetes", "jenkins", "terraform"},
			GoodToHave:     []string{"python", "ansible", "prometheus", "elk stack", "nginx", "bash"},
		},
	}
}

// SuggestRoles scores each role profile against the found skills:
// 70% weight on required skill coverage, 30% on good-to-have coverage,
// rounded to an integer percentage.
func SuggestRoles(skills []string) map[string]int {
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[s] = struct{}{}
	}

	scores := make(map[string]int)
	for role, profile := range DefaultRoleProfiles() {
		required := coverage(profile.RequiredSkills, have)
		goodToHave := coverage(profile.GoodToHave, have)
		scores[role] = int(math.Round((required*0.7 + goodToHave*0.3) * 100))
	}
	return scores
}

func coverage(wanted []string, have map[string]struct{}) float64 {
	if len(wanted) == 0 {
		return 0
	}
	matched := 0
	for _, w := range wanted {
		if _, ok := have[w]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(wanted))
}
