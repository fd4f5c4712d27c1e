package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// fragRe matches one or two whole capitalized or all-caps tokens anchored at
// the end of a line: the typical shape of a title fragment glued onto a
// preceding bullet by column-based extraction.
var fragRe = regexp.MustCompile(`(?:^|\s)((?:[A-Z]{2,}|[A-Z][A-Za-z]+)(?:\s+(?:[A-Z]{2,}|[A-Z][A-Za-z]+))?)$`)

// SplitTrailingTitles re-applies the trailing-title splitter to every item,
// not just the contexts the merge pass checks. An item carrying a trailing
// title is replaced by its prefix followed by the title as a new item.
func SplitTrailingTitles(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if prefix, title, ok := SplitTrailingTitle(item); ok {
			out = append(out, prefix, title)
		} else {
			out = append(out, item)
		}
	}
	return out
}

// MergeShortTitles merges adjacent pairs of short plausible titles into one,
// undoing column-wrapped titles split into two fragments. Both halves must be
// at most 4 words and the join at most 8. Merging consumes both items; the
// result is not re-examined in the same pass.
func MergeShortTitles(items []string) []string {
	out := make([]string, 0, len(items))
	for i := 0; i < len(items); {
		cur := items[i]
		if i+1 < len(items) &&
			LooksLikeProjectTitle(cur) && LooksLikeProjectTitle(items[i+1]) &&
			wordCount(cur) <= 4 && wordCount(items[i+1]) <= 4 &&
			wordCount(cur+" "+items[i+1]) <= 8 {
			out = append(out, strings.TrimSpace(cur+" "+items[i+1]))
			i += 2
			continue
		}
		out = append(out, cur)
		i++
	}
	return out
}

// RescueBulletFragments moves a short trailing fragment from the end of a
// bullet onto a plausible title that follows it. The fragment must be one or
// two whole capitalized tokens at the end of the bullet, and the bullet must
// not already end in terminal punctuation. The rescued pair is consumed
// together.
func RescueBulletFragments(items []string) []string {
	out := make([]string, 0, len(items))
	for i := 0; i < len(items); {
		item := items[i]
		if i+1 < len(items) && IsBullet(item) && LooksLikeProjectTitle(items[i+1]) {
			if frag := trailingFragment(item); frag != "" {
				trimmed := strings.TrimRight(item[:strings.LastIndex(item, frag)], " ")
				trimmed = trimDanglingDash(trimmed)
				out = append(out, trimmed, strings.TrimSpace(frag+" "+items[i+1]))
				i += 2
				continue
			}
		}
		out = append(out, item)
		i++
	}
	return out
}

// trailingFragment returns the rescuable fragment at the end of a bullet, or
// "" when there is none or the bullet ends in punctuation.
func trailingFragment(item string) string {
	t := strings.TrimSpace(item)
	if last, _ := utf8.DecodeLastRuneInString(t); strings.ContainsRune(".!?:;,", last) {
		return ""
	}
	m := fragRe.FindStringSubmatch(strings.TrimRight(item, " "))
	if m == nil {
		return ""
	}
	return m[1]
}

// trimDanglingDash drops a separator dash left hanging at the end of a
// trimmed bullet.
func trimDanglingDash(s string) string {
	if strings.HasSuffix(s, " -") || strings.HasSuffix(s, "–") || strings.HasSuffix(s, "—") {
		_, size := utf8.DecodeLastRuneInString(s)
		return strings.TrimRight(s[:len(s)-size], " ")
	}
	return s
}
