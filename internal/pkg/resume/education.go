package resume

import (
	"regexp"
	"sort"
	"strings"
)

var educationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:bachelor|master|phd|b\.?tech|m\.?tech|b\.?e|m\.?e|b\.?sc|m\.?sc)\b`),
	regexp.MustCompile(`\buniversity\b`),
	regexp.MustCompile(`\bcollege\b`),
	regexp.MustCompile(`\bdegree\b`),
}

// ExtractEducation returns the distinct education markers mentioned in the
// text, sorted. Markers are degree names and institution keywords; they
// feed profile display, not the credibility score.
func ExtractEducation(text string) []string {
	lower := strings.ToLower(text)

	seen := make(map[string]struct{})
	for _, p := range educationPatterns {
		for _, m := range p.FindAllString(lower, -1) {
			seen[m] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
