// Package clean normalizes raw extracted lines and filters out the noise
// that PDF extraction leaves behind: contact details, boilerplate headings,
// stray glyphs from embedded fonts.
package clean

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// stopHeadings are lines dropped outright when they match exactly
// (case-insensitive). They carry no segmentable content.
var stopHeadings = map[string]bool{
	"find me online": true, "contact": true, "links": true, "social": true,
	"key achievements": true, "education": true, "certifications": true,
	"languages": true, "hobbies": true, "interests": true, "awards": true,
	"publications": true, "courses": true, "strengths": true,
	"objective": true, "profile": true, "summary": true, "skills": true,
	"tools": true, "technologies": true,
}

// stopSubstrings mark contact/boilerplate lines anywhere they appear.
var stopSubstrings = []string{
	"linkedin.com", "github.com", "www.", "http://", "https://",
	"@gmail.com", "email", "phone",
}

var (
	privateUseRe = regexp.MustCompile(`[\x{E000}-\x{F8FF}]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Line cleans a single raw line: strips NULs and private-use glyphs,
// NFKC-normalizes, collapses whitespace, and trims. Returns "" when nothing
// survives.
func Line(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\x00", "")
	s = privateUseRe.ReplaceAllString(s, "")
	s = norm.NFKC.String(s)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// IsNoise reports whether a cleaned line is boilerplate: a stop heading, a
// contact-info line, or too short to mean anything.
func IsNoise(s string) bool {
	low := strings.ToLower(s)
	if stopHeadings[low] {
		return true
	}
	for _, tok := range stopSubstrings {
		if strings.Contains(low, tok) {
			return true
		}
	}
	return len(low) <= 2
}

// Lines turns extracted text into the engine's input: split on newlines and
// form feeds, clean each line, drop empties and noise.
func Lines(text string) []string {
	out := []string{}
	for _, raw := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == '\f'
	}) {
		ln := Line(raw)
		if ln == "" || IsNoise(ln) {
			continue
		}
		out = append(out, ln)
	}
	return out
}
