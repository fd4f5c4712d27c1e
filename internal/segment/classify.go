package segment

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Bullet markers: glyphs (•, -, –, —, *) or numbered forms ((1), 2., 3]).
var (
	bulletRe    = regexp.MustCompile(`^[•\-–—*]\s+`)
	numBulletRe = regexp.MustCompile(`^\(?\d+[.)\]]\s+`)
)

// Section header vocabularies. Anchored at line start, forgiving about
// trailing text on the same line.
var (
	experienceHeaderRe = regexp.MustCompile(`(?i)^\s*(experience|work experience|professional experience)\b`)
	projectsHeaderRe   = regexp.MustCompile(`(?i)^\s*(projects|project experience|personal projects)\b`)
	otherHeaderRe      = regexp.MustCompile(`(?i)^\s*(education|skills|certifications?|awards?|publications?|summary|contact|achievements?)\b`)
)

// Job header heuristics: dates, date-range separators, role keywords,
// state codes, all-caps lines.
const monthPattern = `(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`

var (
	dateRe     = regexp.MustCompile(`\b` + monthPattern + `\b.*?\b(19|20)\d{2}\b`)
	rangeRe    = regexp.MustCompile(`\s-\s`)
	roleRe     = regexp.MustCompile(`(?i)\b(Engineer|Developer|Scientist|Analyst|Manager|Consultant|Architect|Administrator)\b`)
	locationRe = regexp.MustCompile(`,\s*[A-Z]{2}(\b|,|\s)`)
	allCapsRe  = regexp.MustCompile(`^[A-Z][A-Z &\-.,/()]+$`)
)

// capTokenRe matches a capitalized token, allowing embedded &, -, /.
var capTokenRe = regexp.MustCompile(`^[A-Z][\w&\-/]+$`)

// smallWords are excluded from the title-case ratio.
var smallWords = map[string]bool{
	"and": true, "for": true, "of": true, "to": true, "in": true,
	"with": true, "on": true, "the": true, "a": true, "an": true, "&": true,
}

// IsBullet reports whether line starts with a recognized list marker.
func IsBullet(line string) bool {
	return bulletRe.MatchString(line) || numBulletRe.MatchString(line)
}

// IsExperienceHeader reports whether line opens an experience section.
func IsExperienceHeader(line string) bool {
	return experienceHeaderRe.MatchString(line)
}

// IsProjectsHeader reports whether line opens a projects section.
func IsProjectsHeader(line string) bool {
	return projectsHeaderRe.MatchString(line)
}

// IsOtherHeader reports whether line opens any other known section
// (education, skills, summary, ...).
func IsOtherHeader(line string) bool {
	return otherHeaderRe.MatchString(line)
}

// LooksLikeJobHeader reports whether line resembles the first line of a job
// entry: a month+year date, a spaced hyphen range, a role keyword, a
// comma-prefixed state code, or an all-caps line.
func LooksLikeJobHeader(line string) bool {
	return dateRe.MatchString(line) ||
		rangeRe.MatchString(line) ||
		roleRe.MatchString(line) ||
		locationRe.MatchString(line) ||
		allCapsRe.MatchString(line)
}

// LooksLikeProjectTitle reports whether line is a plausible short project
// title: 2-120 chars, no terminal punctuation, 1-10 words, and at least 60%
// of significant words title-cased.
func LooksLikeProjectTitle(line string) bool {
	t := strings.TrimSpace(line)
	if len(t) < 2 || len(t) > 120 {
		return false
	}
	if last, _ := utf8.DecodeLastRuneInString(t); strings.ContainsRune(".!?:;,", last) {
		return false
	}
	words := strings.Fields(t)
	if len(words) < 1 || len(words) > 10 {
		return false
	}

	sig, titleish := 0, 0
	for _, w := range words {
		wl := strings.Trim(strings.ToLower(w), ".,:;()[]")
		if smallWords[wl] {
			continue
		}
		sig++
		if isUpperWord(w) || isCapitalized(w) || capTokenRe.MatchString(w) {
			titleish++
		}
	}
	return sig > 0 && float64(titleish)/float64(sig) >= 0.6
}

// StripBullet removes a leading bullet or numbered-list marker from line.
func StripBullet(line string) string {
	if m := bulletRe.FindString(line); m != "" {
		return line[len(m):]
	}
	if m := numBulletRe.FindString(line); m != "" {
		return line[len(m):]
	}
	return line
}

// isUpperWord reports whether w contains at least one letter and no
// lowercase letters.
func isUpperWord(w string) bool {
	hasUpper := false
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

// isCapitalized reports whether w starts uppercase and the remainder is
// lowercase.
func isCapitalized(w string) bool {
	first, size := utf8.DecodeRuneInString(w)
	if !unicode.IsUpper(first) {
		return false
	}
	hasLower := false
	for _, r := range w[size:] {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	return hasLower
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
