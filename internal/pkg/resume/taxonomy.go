package resume

// Taxonomy maps a skill category to its recognized lowercase tokens.
// It is loaded once and never mutated at runtime; the matcher takes its
// own compiled copy at construction.
type Taxonomy map[string][]string

// DefaultTaxonomy returns the built-in skill dictionary used for resume
// analysis in production. Tests may substitute a smaller taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		"Programming Languages": {"python", "java", "javascript", "c++", "ruby", "php", "swift", "kotlin", "r", "matlab", "typescript", "go", "rust"},
		"Web Development":       {"html", "css", "react", "angular", "vue", "node.js", "django", "flask", "asp.net", "next.js", "express", "tailwind"},
		"Database":              {"sql", "mysql", "postgresql", "mongodb", "oracle", "redis", "elasticsearch", "firebase", "dynamodb"},
		"Cloud":                 {"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins", "circleci"},
		"Machine Learning":      {"tensorflow", "pytorch", "scikit-learn", "keras", "opencv", "nlp", "computer vision", "pandas", "numpy"},
		"Tools":                 {"git", "github", "gitlab", "jira", "confluence", "slack", "postman", "swagger", "figma", "vscode"},
		"Soft Skills":           {"leadership", "communication", "teamwork", "problem solving", "analytical", "project management", "agile", "scrum"},
	}
}
