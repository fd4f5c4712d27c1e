package segment

import "strings"

// section is the scan state of the merge pass. It changes only when a
// header line is seen; any non-experience, non-projects header resets it.
type section int

const (
	sectionNone section = iota
	sectionExperience
	sectionProjects
)

// lineRole is decided once per line, then dispatched on.
type lineRole int

const (
	roleText lineRole = iota
	roleExperienceHeader
	roleProjectsHeader
	roleOtherHeader
	roleBullet
)

func classify(line string) lineRole {
	switch {
	case IsExperienceHeader(line):
		return roleExperienceHeader
	case IsProjectsHeader(line):
		return roleProjectsHeader
	case IsOtherHeader(line):
		return roleOtherHeader
	case IsBullet(line):
		return roleBullet
	default:
		return roleText
	}
}

// mergeLines performs the section-aware merge pass: a single forward scan
// that decides, per line, whether it starts a new logical item or continues
// the previous one. Header lines are kept in place as markers for
// splitSections.
func mergeLines(lines []string) []string {
	merged := []string{}
	sec := sectionNone

	for _, raw := range lines {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}

		switch classify(text) {
		case roleExperienceHeader:
			sec = sectionExperience
			merged = append(merged, text)

		case roleProjectsHeader:
			sec = sectionProjects
			merged = append(merged, text)

		case roleOtherHeader:
			sec = sectionNone
			merged = append(merged, text)

		case roleBullet:
			// Bullets always start new items. Under projects, column-based
			// extraction sometimes glues the next title onto a bullet's
			// tail, so check for one.
			if sec == sectionProjects {
				if prefix, title, ok := SplitTrailingTitle(text); ok {
					merged = append(merged, prefix, title)
					continue
				}
			}
			merged = append(merged, text)

		default:
			switch sec {
			case sectionProjects:
				merged = mergeProjectLine(merged, text)
			case sectionExperience:
				if LooksLikeJobHeader(text) || len(merged) == 0 {
					merged = append(merged, text)
				} else {
					merged[len(merged)-1] = joinContinuation(merged[len(merged)-1], text)
				}
			default:
				// No active section. Kept for completeness; splitSections
				// drops these.
				merged = append(merged, text)
			}
		}
	}
	return merged
}

// mergeProjectLine handles a non-bullet, non-header line inside the
// projects section.
func mergeProjectLine(merged []string, text string) []string {
	// The first content line after the header is always a title.
	if len(merged) == 0 || IsProjectsHeader(merged[len(merged)-1]) {
		return append(merged, text)
	}

	last := merged[len(merged)-1]
	if IsBullet(last) {
		// Likely a wrapped continuation of the bullet, but it may carry the
		// next title glued to its end, or be a standalone title on its own.
		if prefix, title, ok := SplitTrailingTitle(text); ok {
			merged[len(merged)-1] = joinContinuation(last, prefix)
			return append(merged, title)
		}
		if LooksLikeProjectTitle(text) {
			return append(merged, text)
		}
		merged[len(merged)-1] = joinContinuation(last, text)
		return merged
	}

	if LooksLikeProjectTitle(text) {
		return append(merged, text)
	}
	merged[len(merged)-1] = joinContinuation(last, text)
	return merged
}

func joinContinuation(prev, next string) string {
	return strings.TrimRight(prev, " ") + " " + next
}

// splitSections partitions the merged sequence into the experience and
// projects lists. Header lines are consumed as markers and never emitted.
func splitSections(merged []string) (experience, projects []string) {
	experience, projects = []string{}, []string{}
	var current *[]string

	for _, line := range merged {
		switch classify(line) {
		case roleExperienceHeader:
			current = &experience
		case roleProjectsHeader:
			current = &projects
		case roleOtherHeader:
			current = nil
		default:
			if current != nil {
				*current = append(*current, line)
			}
		}
	}
	return experience, projects
}
