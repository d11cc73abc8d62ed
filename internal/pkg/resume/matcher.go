package resume

import (
	"regexp"
	"sort"
	"strings"
)

// Matcher finds taxonomy skills in free text. Tokens whose first and last
// characters are word characters are matched with a word-boundary regexp,
// so "go" never matches inside "google" and "java" never matches inside
// "javascript". Tokens that start or end with a symbol ("c++", "c#")
// cannot be bracketed by \b and use plain substring containment instead.
type Matcher struct {
	categories []matchCategory
}

type matchCategory struct {
	name   string
	tokens []tokToken
}

type tokToken struct {
	text string
	re   *regexp.Regexp // nil means substring containment
}

// NewMatcher compiles a matcher for the given taxonomy.
func NewMatcher(taxonomy Taxonomy) *Matcher {
	m := &Matcher{}

	names := make([]string, 0, len(taxonomy))
	for name := range taxonomy {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cat := matchCategory{name: name}
		for _, token := range taxonomy[name] {
			token = strings.ToLower(strings.TrimSpace(token))
			if token == "" {
				continue
			}
			cat.tokens = append(cat.tokens, tokToken{text: token, re: boundaryPattern(token)})
		}
		m.categories = append(m.categories, cat)
	}
	return m
}

// boundaryPattern returns a \b-delimited pattern for the token, or nil when
// the token's edges are not word characters and \b would not anchor.
func boundaryPattern(token string) *regexp.Regexp {
	if !isWordChar(token[0]) || !isWordChar(token[len(token)-1]) {
		return nil
	}
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(token) + `\b`)
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// Match returns the matched tokens per category. A category is present only
// when at least one token matched; a token appears at most once per category.
func (m *Matcher) Match(text string) map[string][]string {
	lower := strings.ToLower(text)

	found := make(map[string][]string)
	for _, cat := range m.categories {
		var matched []string
		for _, tok := range cat.tokens {
			if tok.re != nil {
				if tok.re.MatchString(lower) {
					matched = append(matched, tok.text)
				}
			} else if strings.Contains(lower, tok.text) {
				matched = append(matched, tok.text)
			}
		}
		if len(matched) > 0 {
			found[cat.name] = matched
		}
	}
	return found
}

// UniqueSkills flattens a category map into a sorted, deduplicated skill list.
func UniqueSkills(byCategory map[string][]string) []string {
	seen := make(map[string]struct{})
	var skills []string
	for _, tokens := range byCategory {
		for _, t := range tokens {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			skills = append(skills, t)
		}
	}
	sort.Strings(skills)
	return skills
}
