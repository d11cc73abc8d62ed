package resume

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// maxPlausibleYears caps how many years of experience a single claim or
// date range may contribute. Anything at or above this is treated as noise
// (page numbers, phone digits, "established 1985"-style text).
const maxPlausibleYears = 40

var (
	yearsClaimRe = regexp.MustCompile(`\b(\d{1,2})\s*\+?\s*years?\b`)
	yearRangeRe  = regexp.MustCompile(`\b(\d{4})\s*[-\x{2013}]\s*(\d{4}|present|current|now)\b`)
)

// EstimateExperienceYears infers total years of experience from resume text.
// Two candidate sources are considered: explicit claims ("8+ years") and
// date ranges ("2018 - 2022", "2019 - present"). The largest surviving
// candidate wins; summing ranges would double-count concurrent roles.
// Returns 0 when nothing plausible is found.
func EstimateExperienceYears(text string, now time.Time) int {
	lower := strings.ToLower(text)
	best := 0

	for _, m := range yearsClaimRe.FindAllStringSubmatch(lower, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n >= maxPlausibleYears {
			continue
		}
		if n > best {
			best = n
		}
	}

	currentYear := now.Year()
	for _, m := range yearRangeRe.FindAllStringSubmatch(lower, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := currentYear
		if m[2] != "present" && m[2] != "current" && m[2] != "now" {
			end, err = strconv.Atoi(m[2])
			if err != nil {
				continue
			}
		}
		span := end - start
		if span < 0 || span >= maxPlausibleYears {
			continue
		}
		if span > best {
			best = span
		}
	}

	return best
}
