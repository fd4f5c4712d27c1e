package segment

import "strings"

// maxTitleTokens bounds the trailing window the splitter searches, keeping
// per-line cost constant regardless of line length.
const maxTitleTokens = 10

// SplitTrailingTitle searches the end of line for a run of tokens that is
// itself a plausible project title. Candidate split points are scanned
// left to right, so the longest trailing title wins. The prefix must be
// non-empty: a line that is entirely a title is never split.
//
// When no split point qualifies, the original line is returned with ok false.
func SplitTrailingTitle(line string) (prefix, title string, ok bool) {
	tokens := strings.Fields(strings.TrimSpace(line))
	start := len(tokens) - maxTitleTokens
	if start < 1 {
		start = 1
	}
	for ; start < len(tokens)-1; start++ {
		candidate := strings.Join(tokens[start:], " ")
		if LooksLikeProjectTitle(candidate) {
			return strings.Join(tokens[:start], " "), candidate, true
		}
	}
	return line, "", false
}
